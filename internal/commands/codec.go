// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dacolabs/schemagen/internal/codec"
	"github.com/dacolabs/schemagen/internal/logging"
	"github.com/dacolabs/schemagen/internal/session"
)

// Byte representations accepted by encode --output and decode --input.
var byteEncodings = []string{"base64", "hex", "raw"}

type codecOptions struct {
	format   string
	encoding string
}

func newEncodeCmd() *cobra.Command {
	opts := &codecOptions{}

	cmd := &cobra.Command{
		Use:   "encode MESSAGE [FILE]",
		Short: "Encode a JSON value as a schema message",
		Long: fmt.Sprintf(`Read a message as JSON from FILE (or stdin), check it against the schema
and write it in the selected format.

Formats: %s`, strings.Join(codec.Formats(), ", ")),
		Example: `  # Wire bytes as base64
  echo '{"total": {"amount": 12.5, "currency": "USD"}}' | schemagen encode Price

  # MessagePack written as raw bytes to a file
  schemagen encode Order order.json --format msgpack --output raw > order.msgpack`,
		Args:    cobra.RangeArgs(1, 2),
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			in, err := readInput(cmd, args[1:])
			if err != nil {
				return err
			}
			return runEncode(cmd, ctx, args[0], in, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", codec.Wire.Name(), fmt.Sprintf("Output format (%s)", strings.Join(codec.Formats(), ", ")))
	cmd.Flags().StringVarP(&opts.encoding, "output", "o", "base64", fmt.Sprintf("Byte representation (%s)", strings.Join(byteEncodings, ", ")))

	return cmd
}

func newDecodeCmd() *cobra.Command {
	opts := &codecOptions{}

	cmd := &cobra.Command{
		Use:   "decode MESSAGE [FILE]",
		Short: "Decode a schema message and print it as JSON",
		Long: fmt.Sprintf(`Read an encoded message from FILE (or stdin), check it against the schema
and print it as JSON. Fields unknown to the schema are skipped.

Formats: %s`, strings.Join(codec.Formats(), ", ")),
		Example: `  # Base64 wire bytes from stdin
  echo 'Cg4JAAAAAAAAKUASA1VTRA==' | schemagen decode Price

  # Raw MessagePack from a file
  schemagen decode Order order.msgpack --format msgpack --input raw`,
		Args:    cobra.RangeArgs(1, 2),
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			in, err := readInput(cmd, args[1:])
			if err != nil {
				return err
			}
			return runDecode(cmd, ctx, args[0], in, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", codec.Wire.Name(), fmt.Sprintf("Input format (%s)", strings.Join(codec.Formats(), ", ")))
	cmd.Flags().StringVarP(&opts.encoding, "input", "i", "base64", fmt.Sprintf("Byte representation (%s)", strings.Join(byteEncodings, ", ")))

	return cmd
}

func runEncode(cmd *cobra.Command, ctx *session.Context, name string, in []byte, opts *codecOptions) error {
	format, ok := codec.FormatByName(opts.format)
	if !ok {
		return fmt.Errorf("unsupported format %q. Available formats: %s", opts.format, strings.Join(codec.Formats(), ", "))
	}

	msg, err := codec.New(ctx.Schema, codec.JSON).Decode(name, in)
	if err != nil {
		return err
	}
	data, err := codec.New(ctx.Schema, format).Encode(name, msg)
	if err != nil {
		return err
	}
	logging.From(cmd.Context()).Debug().
		Str("message", name).
		Str("format", format.Name()).
		Int("bytes", len(data)).
		Msg("encoded")

	out := cmd.OutOrStdout()
	switch opts.encoding {
	case "raw":
		_, err = out.Write(data)
	case "hex":
		_, err = fmt.Fprintln(out, hex.EncodeToString(data))
	case "base64":
		_, err = fmt.Fprintln(out, base64.StdEncoding.EncodeToString(data))
	default:
		return fmt.Errorf("unsupported output %q: use one of %s", opts.encoding, strings.Join(byteEncodings, ", "))
	}
	return err
}

func runDecode(cmd *cobra.Command, ctx *session.Context, name string, in []byte, opts *codecOptions) error {
	format, ok := codec.FormatByName(opts.format)
	if !ok {
		return fmt.Errorf("unsupported format %q. Available formats: %s", opts.format, strings.Join(codec.Formats(), ", "))
	}

	data, err := decodeBytes(in, opts.encoding)
	if err != nil {
		return err
	}
	msg, err := codec.New(ctx.Schema, format).Decode(name, data)
	if err != nil {
		return err
	}
	doc, err := codec.New(ctx.Schema, codec.JSON).Encode(name, msg)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, doc, "", "  "); err != nil {
		return err
	}
	pretty.WriteByte('\n')
	_, err = pretty.WriteTo(cmd.OutOrStdout())
	return err
}

func decodeBytes(in []byte, encoding string) ([]byte, error) {
	switch encoding {
	case "raw":
		return in, nil
	case "hex":
		data, err := hex.DecodeString(strings.Join(strings.Fields(string(in)), ""))
		if err != nil {
			return nil, fmt.Errorf("invalid hex input: %w", err)
		}
		return data, nil
	case "base64":
		data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(string(in)), ""))
		if err != nil {
			return nil, fmt.Errorf("invalid base64 input: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unsupported input %q: use one of %s", encoding, strings.Join(byteEncodings, ", "))
}

// readInput reads the named file, or the command's stdin when no file or
// "-" is given.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}
