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

package resolver

import "dirpx.dev/attrx/apis"

// kindSet is an immutable set of kinds threaded through the walk. with
// returns a new set; the receiver is never modified.
type kindSet map[apis.Kind]struct{}

func (s kindSet) has(k apis.Kind) bool {
	_, ok := s[k]
	return ok
}

func (s kindSet) with(insts []apis.Instance) kindSet {
	out := make(kindSet, len(s)+len(insts))
	for k := range s {
		out[k] = struct{}{}
	}
	for _, inst := range insts {
		out[inst.Kind()] = struct{}{}
	}
	return out
}
