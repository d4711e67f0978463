package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"netbelge/internal/storagepath"
)

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize LABEL...",
		Short: "Print the path segment each label normalizes to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, label := range args {
				fmt.Fprintln(cmd.OutOrStdout(), storagepath.Normalize(label))
			}
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	var literal bool
	cmd := &cobra.Command{
		Use:   "validate VALUE",
		Short: "Check a path template, or a literal value with --literal",
		Long: `Validate applies the storage path rules to VALUE. Templates may contain
the placeholders {yil} {ay} {gun} {saat} {dakika} {saniye} {belge_turu}
{belge_no}; each is replaced by a stand-in before the checks run and the
substituted form is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			check := storagepath.ValidateTemplate
			if literal {
				check = storagepath.ValidateLiteral
			}
			substituted, err := check(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), substituted)
			return nil
		},
	}
	cmd.Flags().BoolVar(&literal, "literal", false, "treat VALUE as a literal; braces are not placeholders")
	return cmd
}
