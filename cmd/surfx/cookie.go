package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joestump/surfx/internal/prefs"
)

func newCookieCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cookie",
		Short: "Inspect or build preference cookie values",
	}
	cmd.PersistentFlags().String("name", prefs.DefaultCookieName, "preference cookie name")
	cmd.AddCommand(newCookieDecodeCmd())
	cmd.AddCommand(newCookieEncodeCmd())
	return cmd
}

func newCookieDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <value>",
		Short: "Print the preferences held by a cookie value",
		Long: "Decode accepts either the bare cookie value or a whole Cookie header. " +
			"Percent-encoded input is unescaped first.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			codec := prefs.NewCodec(name)

			raw := args[0]
			if v, err := url.QueryUnescape(raw); err == nil {
				raw = v
			}

			var (
				rec prefs.Record
				err error
			)
			if strings.HasPrefix(strings.TrimSpace(raw), "{") {
				rec, err = codec.DecodeValue(raw)
			} else {
				var ok bool
				rec, ok, err = codec.Decode(raw)
				if err == nil && !ok {
					return fmt.Errorf("no %s cookie in input", codec.Name)
				}
			}
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

func newCookieEncodeCmd() *cobra.Command {
	var (
		rec        prefs.Record
		safeSearch int
		escaped    bool
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a preference cookie value",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			codec := prefs.NewCodec(name)
			if cmd.Flags().Changed("safe-search") {
				rec.SafeSearchLevel = prefs.Level(safeSearch)
			}
			value, err := codec.Encode(rec)
			if err != nil {
				return err
			}
			if escaped {
				value = url.QueryEscape(value)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
	cmd.Flags().StringVar(&rec.Theme, "theme", "", "theme name")
	cmd.Flags().StringVar(&rec.ColorScheme, "colorscheme", "", "color scheme name")
	cmd.Flags().StringVar(&rec.Animation, "animation", "", "animation name")
	cmd.Flags().IntVar(&safeSearch, "safe-search", prefs.SafeSearchLow, "safe search level (0-2)")
	cmd.Flags().StringSliceVar(&rec.Engines, "engines", nil, "enabled engines")
	cmd.Flags().BoolVar(&escaped, "escaped", false, "percent-encode the value as it is sent in Set-Cookie")
	return cmd
}
