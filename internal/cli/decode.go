package cli

import (
	"datauri/internal/config"
	"datauri/internal/datauri"
	"datauri/internal/inputfilter"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type decodeOptions struct {
	file   string
	dir    string
	out    string
	strict bool
	asJSON bool
}

type decodeResult struct {
	Path      string `json:"path"`
	MediaType string `json:"media_type"`
	Size      int64  `json:"size"`
}

func newDecodeCmd() *cobra.Command {
	var opts decodeOptions

	decodeCmd := &cobra.Command{
		Use:   "decode [value]",
		Short: "Decode a data URI into a file",
		Long: `Decodes a data:<type>/<subtype>;base64,<payload> value into a new temporary file
and prints its path, media type and size. The value is read from the argument,
from --file, or from stdin when neither is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.ParseConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !cmd.Flags().Changed("dir") {
				opts.dir = cfg.TempDir
			}
			if !cmd.Flags().Changed("strict") {
				opts.strict = cfg.StrictBase64
			}

			value, err := readValue(cmd, args, opts.file)
			if err != nil {
				return err
			}

			decoder := datauri.NewDecoder(
				datauri.WithTempDir(opts.dir),
				datauri.WithTempPrefix(cfg.TempPrefix),
				datauri.WithStrictBase64(opts.strict),
			)
			result, err := decodeToFile(decoder, value, opts.out)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, opts.asJSON)
		},
	}

	decodeCmd.Flags().StringVarP(&opts.file, "file", "f", "", "read the data URI from a file")
	decodeCmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "directory for the decoded file (defaults to DATAURI_TEMP_DIR or the system temp dir)")
	decodeCmd.Flags().StringVarP(&opts.out, "out", "o", "", "move the decoded file to this path")
	decodeCmd.Flags().BoolVar(&opts.strict, "strict", false, "reject payloads that are not canonical base64")
	decodeCmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	return decodeCmd
}

// readValue returns the data URI from the argument, the file flag or stdin.
func readValue(cmd *cobra.Command, args []string, file string) (string, error) {
	if len(args) == 1 {
		if file != "" {
			return "", fmt.Errorf("value argument and --file are mutually exclusive")
		}
		return args[0], nil
	}
	if file != "" {
		content, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return strings.TrimSpace(string(content)), nil
	}
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(content)), nil
}

// decodeToFile runs the value through a Base64FileInput so the decoded file
// carries the same upload semantics as the HTTP API, then optionally moves it.
func decodeToFile(decoder *datauri.Decoder, value, out string) (*decodeResult, error) {
	input := inputfilter.NewBase64FileInput(nil, nil, "value", inputfilter.WithDecoder(decoder))
	if err := input.SetValue(value); err != nil {
		return nil, err
	}
	file := input.Value()

	stream, err := file.Stream()
	if err != nil {
		return nil, err
	}
	size, err := stream.Size()
	if err != nil {
		return nil, err
	}
	path := stream.Path()

	if out == "" {
		// the decoded file stays on disk for the caller
		if err := stream.Close(); err != nil {
			return nil, err
		}
	} else {
		if err := file.MoveTo(out); err != nil {
			return nil, fmt.Errorf("failed to move decoded file: %w", err)
		}
		path = out
	}

	return &decodeResult{
		Path:      path,
		MediaType: file.ClientMediaType(),
		Size:      size,
	}, nil
}

func printResult(w io.Writer, result *decodeResult, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	_, err := fmt.Fprintf(w, "%s\t%s\t%d\n", result.Path, result.MediaType, result.Size)
	return err
}
