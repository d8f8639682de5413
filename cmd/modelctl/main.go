package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/danmuck/modelwire/internal/config"
	"github.com/danmuck/modelwire/internal/isoduration"
	"github.com/danmuck/modelwire/internal/logging"
	"github.com/danmuck/modelwire/internal/models"
	"github.com/danmuck/modelwire/internal/observability"
	"github.com/danmuck/modelwire/internal/serialization"
	"github.com/danmuck/modelwire/internal/serialization/jsonwire"
	"github.com/danmuck/modelwire/internal/serialization/tlvwire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/pretty"
)

const usage = `usage: modelctl [-config path] <command> [flags]

commands:
  decode    decode a payload and re-encode it
  duration  parse ISO-8601 durations
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("modelctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "codec config path (TOML)")
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.DefaultCodecConfig()
	if *configPath != "" {
		loaded, err := config.LoadCodecConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "modelctl: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	logging.Apply(logConfig(cfg, stderr))

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return 2
	}
	switch rest[0] {
	case "decode":
		return runDecode(cfg, rest[1:], stdin, stdout, stderr)
	case "duration":
		return runDuration(rest[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "modelctl: unknown command %q\n", rest[0])
		fs.Usage()
		return 2
	}
}

// logConfig layers the codec config level and then the MODELWIRE_LOG_*
// environment over the runtime logging profile. Logs go to stderr so stdout
// stays free for encoded payloads.
func logConfig(cfg config.CodecConfig, stderr io.Writer) logging.Config {
	lc := logging.DefaultConfig(logging.ProfileRuntime)
	lc.Out = stderr
	lc.App = "modelctl"
	lc.NoColor = !logging.IsTerminal(stderr)
	if level, ok := logging.ParseLevel(cfg.LogLevel); ok {
		lc.Level = level
	}
	logging.ApplyEnvOverrides(&lc)
	return lc
}

type decodeOptions struct {
	typeName       string
	in             string
	contentType    string
	outContentType string
	collection     bool
	hexDump        bool
	indent         bool
}

func runDecode(cfg config.CodecConfig, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts decodeOptions
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.typeName, "type", "odataerror", "model: "+strings.Join(modelNames(), " | "))
	fs.StringVar(&opts.in, "in", "", "input file (defaults to stdin)")
	fs.StringVar(&opts.contentType, "content-type", cfg.ContentType, "input content type")
	fs.StringVar(&opts.outContentType, "out-content-type", cfg.OutputContentType, "output content type")
	fs.BoolVar(&opts.collection, "collection", false, "payload is an array of models")
	fs.BoolVar(&opts.hexDump, "hex", false, "hex-dump the encoded output")
	fs.BoolVar(&opts.indent, "indent", cfg.Indent, "pretty-print JSON output")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := decode(cfg, opts, stdin, stdout); err != nil {
		log.Error().Err(err).Str("type", opts.typeName).Msg("decode failed")
		return 1
	}
	return 0
}

func decode(cfg config.CodecConfig, opts decodeOptions, stdin io.Reader, stdout io.Writer) error {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewCodecMetrics(reg)
	if err != nil {
		return err
	}
	ctor, err := modelFactory(opts.typeName, cfg.DiscriminatorKey, metrics)
	if err != nil {
		return err
	}
	metrics.ObserveFallbacks(models.AttachmentVariants())
	defer models.AttachmentVariants().SetOnFallback(nil)

	parsers := serialization.NewParseNodeFactoryRegistry()
	writers := serialization.NewSerializationWriterFactoryRegistry()
	if err := jsonwire.Register(parsers, writers); err != nil {
		return err
	}
	if err := tlvwire.Register(parsers, writers, cfg.Limits()); err != nil {
		return err
	}
	parser := metrics.InstrumentParseNodeFactory(parsers)
	writer := metrics.InstrumentSerializationWriterFactory(writers)

	content, err := readInput(opts.in, stdin)
	if err != nil {
		return err
	}

	var out []byte
	if opts.collection {
		items, err := serialization.DeserializeCollection(parser, opts.contentType, content, ctor)
		if err != nil {
			return err
		}
		for i, item := range items {
			describe(fmt.Sprintf("%s[%d]", opts.typeName, i), item)
		}
		out, err = serialization.SerializeCollection(writer, opts.outContentType, items)
		if err != nil {
			return err
		}
	} else {
		model, err := serialization.Deserialize(parser, opts.contentType, content, ctor)
		if err != nil {
			return err
		}
		if model == nil {
			return errors.New("payload is null")
		}
		describe(opts.typeName, model)
		out, err = serialization.Serialize(writer, opts.outContentType, model)
		if err != nil {
			return err
		}
	}

	if opts.indent && serialization.NormalizeContentType(opts.outContentType) == jsonwire.ContentType {
		out = pretty.Pretty(out)
	}
	if opts.hexDump {
		_, err = io.WriteString(stdout, hex.Dump(out))
	} else {
		_, err = stdout.Write(out)
	}
	if err != nil {
		return err
	}
	logMetrics(reg)
	return nil
}

var modelFactories = map[string]serialization.ParsableFactory{
	"odataerror": models.CreateODataErrorFromDiscriminatorValue,
	"message":    models.CreateMessageFromDiscriminatorValue,
	"itembody":   models.CreateItemBodyFromDiscriminatorValue,
}

func modelNames() []string {
	names := []string{"attachment"}
	for name := range modelFactories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// modelFactory resolves a -type name. Top-level attachments use a registry
// keyed by the configured discriminator.
func modelFactory(name, discriminatorKey string, metrics *observability.CodecMetrics) (serialization.ParsableFactory, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "attachment" {
		if discriminatorKey == serialization.DefaultDiscriminatorKey {
			return models.CreateAttachmentFromDiscriminatorValue, nil
		}
		variants := models.NewAttachmentVariants(discriminatorKey)
		metrics.ObserveFallbacks(variants)
		return variants.Create, nil
	}
	ctor, ok := modelFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown model type %q (supported: %s)", name, strings.Join(modelNames(), ", "))
	}
	return ctor, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func describe(label string, model serialization.Parsable) {
	if serialization.IsNil(model) {
		log.Info().Str("model", label).Msg("null")
		return
	}
	event := log.Info().Str("model", label).Str("go_type", fmt.Sprintf("%T", model))
	if holder, ok := model.(serialization.AdditionalDataHolder); ok {
		if keys := serialization.SortedKeys(holder.GetAdditionalData()); len(keys) > 0 {
			event = event.Strs("unknown_fields", keys)
		}
	}
	if odataErr, ok := model.(*models.ODataError); ok {
		event = event.Str("primary_message", odataErr.PrimaryMessage())
	}
	event.Msg("decoded")
}

func logMetrics(reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		log.Warn().Err(err).Msg("gather codec metrics")
		return
	}
	for _, mf := range families {
		total := 0.0
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		log.Debug().Str("metric", mf.GetName()).Float64("total", total).Msg("codec metric")
	}
}

func runDuration(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "usage: modelctl duration <ISO-8601 duration>...")
		return 2
	}
	for _, raw := range args {
		d, err := isoduration.Parse(raw)
		if err != nil {
			log.Error().Err(err).Str("input", raw).Msg("duration rejected")
			return 1
		}
		fmt.Fprintf(stdout, "%s\t%s\tyears=%d months=%d weeks=%d days=%d hours=%d minutes=%d seconds=%d\tapprox=%s\n",
			raw, d, d.Years, d.Months, d.Weeks, d.Days, d.Hours, d.Minutes, d.Seconds, d.Approximate())
	}
	return 0
}
