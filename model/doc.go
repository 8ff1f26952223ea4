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

// Package model provides in-memory declarations, attribute kinds, attribute
// instances and the instantiator that synthesizes them.
//
// A vocabulary is built once (by hand, or by the loader package) and then
// treated as read-only: kinds and declarations are mutated only through the
// With*/Annotate builders before the first resolution.
package model
