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

package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"dirpx.dev/attrx"
	"dirpx.dev/attrx/apis"
	"dirpx.dev/attrx/errors"
	"dirpx.dev/attrx/loader"
)

type resolveOptions struct {
	vocab string
	decls []string
	kinds []string
	dump  bool
	stats bool
}

func newResolveCmd() *cobra.Command {
	var o resolveOptions
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve attribute kinds on declarations",
		Long: `Resolve every requested kind on every requested declaration and print the
instance found, or "absent". Without --decl all declarations are used;
without --kind all kinds defined by the vocabulary are used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.OutOrStdout(), o)
		},
	}
	cmd.Flags().StringVarP(&o.vocab, "file", "f", "", "vocabulary file (required)")
	cmd.Flags().StringSliceVarP(&o.decls, "decl", "d", nil, "declaration names")
	cmd.Flags().StringSliceVarP(&o.kinds, "kind", "k", nil, "kind names")
	cmd.Flags().BoolVar(&o.dump, "dump", false, "dump resolved instances in full")
	cmd.Flags().BoolVar(&o.stats, "stats", false, "print cache statistics afterwards")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runResolve(w io.Writer, o resolveOptions) error {
	v, err := loader.LoadFile(o.vocab)
	if err != nil {
		return err
	}

	decls, err := pick(o.decls, v.Declarations(), v.Declaration)
	if err != nil {
		return err
	}
	kinds, err := pick(o.kinds, v.Kinds(), v.Kind)
	if err != nil {
		return err
	}

	for _, d := range decls {
		for _, k := range kinds {
			inst, err := attrx.Resolve(d, k)
			if err != nil {
				return err
			}
			if inst == nil {
				fmt.Fprintf(w, "%s %s: absent\n", d.Name(), k)
				continue
			}
			fmt.Fprintf(w, "%s %s: %s\n", d.Name(), k, inst)
			if o.dump {
				spew.Fdump(w, inst)
			}
		}
	}

	if o.stats {
		s := attrx.Stats()
		fmt.Fprintf(w, "computes=%d hits=%d negative_hits=%d evictions=%d positive=%d negative=%d\n",
			s.Computes, s.Hits, s.NegativeHits, s.Evictions, s.Positive, s.Negative)
	}
	return nil
}

// pick returns the named entries, or all of them when names is empty.
func pick[T apis.Declaration](names []string, all []T, lookup func(string) (T, bool)) ([]T, error) {
	if len(names) == 0 {
		return all, nil
	}
	out := make([]T, 0, len(names))
	for _, n := range names {
		e, ok := lookup(n)
		if !ok {
			return nil, errors.Newf("unknown name %q", n)
		}
		out = append(out, e)
	}
	return out, nil
}
