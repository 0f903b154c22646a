package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/danmuck/ubxwire/internal/capture"
	"github.com/danmuck/ubxwire/internal/config"
	"github.com/danmuck/ubxwire/internal/logging"
	"github.com/danmuck/ubxwire/internal/observability"
	"github.com/danmuck/ubxwire/internal/protocol"
	"github.com/danmuck/ubxwire/internal/protocol/frame"
	"github.com/danmuck/ubxwire/internal/protocol/schema"
	"github.com/danmuck/ubxwire/internal/protocol/stream"
	"github.com/danmuck/ubxwire/internal/protocol/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	dump  config.DumpConfig
	flat  bool
	hex   bool
	polls []string
}

func main() {
	logging.ConfigureRuntime()

	opts, err := parseOptions(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("ubxdump: bad arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("ubxdump stopped")
	}
}

func parseOptions(args []string) (options, error) {
	fs := flag.NewFlagSet("ubxdump", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a ubxdump TOML config")
	source := fs.String("source", "", "device, file or capture to read; - for stdin")
	replay := fs.Bool("replay", false, "treat source as a capture file")
	capturePath := fs.String("capture", "", "record the raw stream to this capture file")
	codec := fs.String("codec", "", "capture codec: lz4|snappy|none")
	mode := fs.String("mode", "", "layout table for decoding: get|set|poll")
	strict := fs.Bool("strict", false, "reject payloads longer than their layout")
	include := fs.String("include", "", "comma-separated message name globs to print")
	exclude := fs.String("exclude", "", "comma-separated message name globs to hide")
	nmea := fs.Bool("nmea", false, "print NMEA sentences")
	rtcm := fs.Bool("rtcm", false, "print RTCM3 frames")
	metrics := fs.String("metrics", "", "serve prometheus metrics on this address")
	jsonOut := fs.Bool("json", false, "print one JSON object per event")
	flat := fs.Bool("flat", false, "print group members as name_NN attributes")
	hexOut := fs.Bool("hex", false, "print a hex table of each raw UBX frame after its line")
	poll := fs.String("poll", "", "comma-separated messages to poll on the source before reading")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	cfg := config.DefaultDumpConfig()
	if *configPath != "" {
		loaded, err := config.LoadDumpConfig(*configPath)
		if err != nil {
			return options{}, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Source = *source
		case "replay":
			cfg.Replay = *replay
		case "capture":
			cfg.Capture = *capturePath
		case "codec":
			cfg.CaptureCodec = *codec
		case "mode":
			cfg.Mode = *mode
		case "strict":
			cfg.Strict = *strict
		case "include":
			cfg.Include = splitList(*include)
		case "exclude":
			cfg.Exclude = splitList(*exclude)
		case "nmea":
			cfg.SurfaceNMEA = *nmea
		case "rtcm":
			cfg.SurfaceRTCM = *rtcm
		case "metrics":
			cfg.MetricsAddr = *metrics
		case "json":
			cfg.JSON = *jsonOut
		}
	})
	if err := config.ValidateDumpConfig(cfg); err != nil {
		return options{}, err
	}
	return options{dump: cfg, flat: *flat, hex: *hexOut, polls: splitList(*poll)}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func run(ctx context.Context, opts options, out io.Writer) error {
	cfg := opts.dump
	mode, _ := schema.ParseMode(cfg.Mode)

	src, closeSrc, err := openSource(cfg, len(opts.polls) > 0)
	if err != nil {
		return err
	}
	defer closeSrc()

	if len(opts.polls) > 0 {
		if err := sendPolls(src, opts.polls); err != nil {
			return err
		}
	}

	var in io.Reader = src
	if cfg.Capture != "" && !cfg.Replay {
		codec, _ := capture.ParseCodec(cfg.CaptureCodec)
		cw, err := capture.Create(cfg.Capture, codec)
		if err != nil {
			return err
		}
		defer func() {
			if err := cw.Close(); err != nil {
				log.Error().Err(err).Str("path", cfg.Capture).Msg("capture close failed")
				return
			}
			log.Info().Str("path", cfg.Capture).Int64("bytes", cw.Written()).Stringer("codec", cw.Codec()).Msg("capture written")
		}()
		in = io.TeeReader(src, cw)
	}

	streamOpts := []stream.Option{
		stream.WithMode(mode),
		stream.WithStrict(cfg.Strict),
		stream.WithLimits(frame.Limits{MaxPayloadBytes: cfg.MaxPayload}),
		stream.WithReadSize(cfg.ReadSize),
		stream.WithLogger(log.Logger),
	}
	var surface []frame.Protocol
	if cfg.SurfaceNMEA {
		surface = append(surface, frame.NMEA)
	}
	if cfg.SurfaceRTCM {
		surface = append(surface, frame.RTCM3)
	}
	if len(surface) > 0 {
		streamOpts = append(streamOpts, stream.WithProtocols(surface...))
	}
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr)
		defer srv.Close()
		streamOpts = append(streamOpts, stream.WithObserver(observability.NewStreamMetrics(cfg.Source)))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		closeSrc()
	}()

	p := newPrinter(out, cfg, opts.flat, opts.hex)
	reader := stream.NewReader(in, streamOpts...)
	log.Info().Str("source", cfg.Source).Stringer("mode", mode).Bool("strict", cfg.Strict).Msg("ubxdump reading")
	err = reader.Each(p.print)
	var te *stream.TruncatedFrameError
	switch {
	case err == nil:
	case errors.As(err, &te):
		log.Warn().Err(err).Msg("input ended inside a frame")
		err = nil
	case ctx.Err() != nil:
		err = nil
	}
	log.Info().Int("printed", p.printed).Int("checksum_failures", p.checksum).Int("decode_failures", p.failures).Msg("ubxdump done")
	return err
}

func openSource(cfg config.DumpConfig, writable bool) (io.ReadWriter, func(), error) {
	if cfg.Source == "-" {
		return readOnly{os.Stdin}, func() {}, nil
	}
	if cfg.Replay {
		r, err := capture.Open(cfg.Source)
		if err != nil {
			return nil, nil, err
		}
		return readOnly{r}, closeOnce(r), nil
	}
	flags := os.O_RDONLY
	if writable {
		flags = os.O_RDWR
	}
	f, err := os.OpenFile(cfg.Source, flags, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("source open failed (%s): %w", cfg.Source, err)
	}
	return f, closeOnce(f), nil
}

func closeOnce(c io.Closer) func() {
	var once sync.Once
	return func() { once.Do(func() { c.Close() }) }
}

type readOnly struct{ io.Reader }

var errReadOnly = errors.New("source is read-only; polls need a device or file")

func (readOnly) Write([]byte) (int, error) { return 0, errReadOnly }

func sendPolls(w io.Writer, names []string) error {
	for _, name := range names {
		id, ok := schema.LookupName(name)
		if !ok {
			return fmt.Errorf("poll: unknown message %q", name)
		}
		if _, err := w.Write(protocol.NewPoll(id)); err != nil {
			return fmt.Errorf("poll %s: %w", id, err)
		}
		log.Debug().Stringer("ubx", id).Msg("poll sent")
	}
	return nil
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", addr).Msg("metrics listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
	return srv
}

type printer struct {
	out      io.Writer
	json     zerolog.Logger
	cfg      config.DumpConfig
	flat     bool
	hex      bool
	printed  int
	checksum int
	failures int
}

func newPrinter(out io.Writer, cfg config.DumpConfig, flat, hex bool) *printer {
	return &printer{out: out, json: zerolog.New(out), cfg: cfg, flat: flat, hex: hex}
}

func (p *printer) print(ev stream.Event) error {
	switch e := ev.(type) {
	case stream.Message:
		if !p.cfg.Selected(e.Name()) {
			return nil
		}
		return p.message(e.Message, e.Raw)
	case stream.ChecksumFailure:
		p.checksum++
		log.Warn().Stringer("ubx", e.Frame.Identity()).Err(e.Err).Msg("checksum failure")
	case stream.DecodeFailure:
		p.failures++
		log.Warn().Stringer("ubx", e.Frame.Identity()).Err(e.Err).Msg("decode failure")
	case stream.Foreign:
		name := strings.ToUpper(e.Protocol.String())
		if !p.cfg.Selected(name) {
			return nil
		}
		p.printed++
		if p.cfg.JSON {
			p.json.Log().Str("protocol", e.Protocol.String()).Int("len", len(e.Data)).Str("data", strings.TrimRight(string(e.Data), "\r\n")).Send()
			return nil
		}
		if e.Protocol == frame.NMEA {
			_, err := fmt.Fprintf(p.out, "<NMEA(%s)>\n", strings.TrimRight(string(e.Data), "\r\n"))
			return err
		}
		_, err := fmt.Fprintf(p.out, "<RTCM3(%d bytes)>\n", len(e.Data))
		return err
	}
	return nil
}

func (p *printer) message(m *protocol.Message, raw []byte) error {
	p.printed++
	rec := m.Record
	if p.flat {
		rec = m.Flatten()
	}
	if p.cfg.JSON {
		ev := p.json.Log().Str("ubx", m.Name()).Bool("known", m.Known)
		for _, a := range m.Flatten() {
			ev = jsonAttr(ev, a)
		}
		if len(m.Trailing) > 0 {
			ev = ev.Hex("trailing", m.Trailing)
		}
		ev.Send()
		return nil
	}
	shown := protocol.Message{Identity: m.Identity, Mode: m.Mode, Record: rec}
	if _, err := fmt.Fprintln(p.out, shown.String()); err != nil {
		return err
	}
	if p.hex {
		_, err := io.WriteString(p.out, frame.HexTable(raw, 8))
		return err
	}
	return nil
}

func jsonAttr(ev *zerolog.Event, a wire.Attr) *zerolog.Event {
	switch a.Value.Kind() {
	case wire.ValueUint:
		u, _ := a.Value.Uint()
		return ev.Uint64(a.Name, u)
	case wire.ValueInt:
		i, _ := a.Value.Int()
		return ev.Int64(a.Name, i)
	case wire.ValueFloat:
		f, _ := a.Value.Float()
		return ev.Float64(a.Name, f)
	case wire.ValueBool:
		b, _ := a.Value.Bool()
		return ev.Bool(a.Name, b)
	case wire.ValueString:
		b, _ := a.Value.Bytes()
		return ev.Str(a.Name, strings.TrimRight(string(b), "\x00"))
	case wire.ValueBytes:
		b, _ := a.Value.Bytes()
		return ev.Hex(a.Name, b)
	default:
		return ev.Str(a.Name, a.Value.String())
	}
}
