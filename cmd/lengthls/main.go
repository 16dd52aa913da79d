// lengthls parses SVG length lists from the command line, mainly useful for
// checking what a given attribute value normalizes to.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blitline-dev/batik"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lengthls",
		Short:         "Inspect SVG length lists",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newParseCmd())
	return root
}

func newParseCmd() *cobra.Command {
	var (
		axisName string
		sep      string
	)
	cmd := &cobra.Command{
		Use:   "parse <list>",
		Short: "Parse a length list and print its normalized form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, err := axisFromName(axisName)
			if err != nil {
				return err
			}
			items, err := batik.ParseLengthList(args[0], axis)
			if err != nil {
				return err
			}
			for i, it := range items {
				fmt.Printf("%3d: %-12s %g\n", i, it.Unit, it.Value)
			}
			texts := make([]string, len(items))
			for i, it := range items {
				texts[i] = it.String()
			}
			fmt.Println(strings.Join(texts, sep))
			return nil
		},
	}
	cmd.Flags().StringVar(&axisName, "axis", "unspecified", "axis the lengths are measured along (horizontal|vertical|unspecified)")
	cmd.Flags().StringVar(&sep, "sep", " ", "separator for the normalized output")
	return cmd
}

func axisFromName(name string) (batik.Axis, error) {
	switch name {
	case "horizontal":
		return batik.AxisHorizontal, nil
	case "vertical":
		return batik.AxisVertical, nil
	case "unspecified":
		return batik.AxisUnspecified, nil
	default:
		return batik.AxisUnspecified, fmt.Errorf("unknown axis %q", name)
	}
}
