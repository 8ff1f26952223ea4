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
	"strings"

	"github.com/spf13/cobra"

	"dirpx.dev/attrx/apis"
	"dirpx.dev/attrx/loader"
	"dirpx.dev/attrx/model"
)

func newInspectCmd() *cobra.Command {
	var vocab string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the kinds and declarations of a vocabulary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loader.LoadFile(vocab)
			if err != nil {
				return err
			}
			inspect(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().StringVarP(&vocab, "file", "f", "", "vocabulary file (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func inspect(w io.Writer, v *loader.Vocabulary) {
	fmt.Fprintln(w, "kinds:")
	for _, k := range v.Kinds() {
		fmt.Fprintf(w, "  %s", k)
		var traits []string
		if k.Builtin() {
			traits = append(traits, "builtin")
		}
		if c := k.RepeatsInto(); c != nil {
			traits = append(traits, "repeats into @"+c.Name())
		}
		if p := k.Projection(); p != nil {
			traits = append(traits, "projects onto "+rule(p))
		}
		targets := make([]string, 0, len(k.Targets()))
		for _, el := range k.Targets() {
			targets = append(targets, el.String())
		}
		traits = append(traits, "on "+strings.Join(targets, ","))
		fmt.Fprintf(w, " [%s]\n", strings.Join(traits, "; "))

		for _, p := range k.Properties() {
			fmt.Fprintf(w, "    %s %s", p.Name, p.Type)
			if p.Projection != nil {
				fmt.Fprintf(w, " -> %s", rule(p.Projection))
			}
			fmt.Fprintln(w)
		}
		attributes(w, k.Attributes())
	}

	fmt.Fprintln(w, "declarations:")
	for _, d := range v.Declarations() {
		fmt.Fprintf(w, "  %s (%s)\n", d.Name(), d.Element())
		attributes(w, d.Attributes())
	}
}

func attributes(w io.Writer, insts []apis.Instance) {
	for _, inst := range insts {
		if s, ok := inst.(*model.Instance); ok {
			fmt.Fprintf(w, "    %s\n", s)
			continue
		}
		fmt.Fprintf(w, "    @%s\n", inst.Kind().Name())
	}
}

func rule(p *apis.Projection) string {
	if p.Name == "" {
		return "@" + p.Target.Name()
	}
	return "@" + p.Target.Name() + "." + p.Name
}
