/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package resolver implements the attribute resolution algorithm.
//
// Resolution of kind K on declaration D proceeds as follows:
//
//  1. The positive and negative caches are consulted for (D, K).
//  2. An attribute of kind K directly present on D is the answer. If K is a
//     repeatable container marked for mixing, children of K reachable
//     through D's meta-attributes are appended to it.
//  3. If K is a repeatable container that is not directly present, every
//     child instance present on D or reachable through its meta-attributes
//     is collected, in order, into a synthesized container.
//  4. Otherwise, if K may be applied to types or attribute kinds, the kind
//     declarations of D's attributes are searched, shallowest match first.
//     A match found on the kind declaration of meta-attribute M is carried
//     through Project, taking M's values wherever a projection rule says so.
//
// Kinds already visited on the current path, or seen as siblings at the
// current level, are never descended into again, so cyclic vocabularies
// terminate.
package resolver
