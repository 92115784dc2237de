package cmd

import (
	"github.com/spf13/cobra"

	"segscore/adapters/data"
)

var flagTo string

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a dataset between formats, merging directories",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&flagTo, "to", "", "output format: json or tsv (default: by extension)")
}

func runConvert(_ *cobra.Command, args []string) error {
	inFormat := data.Format("")
	if flagFormat != "" {
		f, err := data.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
		inFormat = f
	}
	ds, err := data.Load(args[0], inFormat)
	if err != nil {
		return err
	}

	outFormat := data.Format("")
	if flagTo != "" {
		outFormat, err = data.ParseFormat(flagTo)
	} else {
		outFormat, err = data.DetectFormat(args[1])
	}
	if err != nil {
		return err
	}
	return data.Save(args[1], ds, outFormat)
}
