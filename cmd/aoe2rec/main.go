/*

Command aoe2rec decodes an Age of Kings/Conquerors recorded-game file and
prints (or dumps) information about it.

Usage:

	aoe2rec [OPTIONS] <recfile>

*/
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/aoe2rec/aoe2rec/log"
	"github.com/aoe2rec/aoe2rec/rep"
	"github.com/aoe2rec/aoe2rec/repparser"
)

const (
	exitOK    = 0
	exitError = 1
)

// fileConfig is the shape of the optional flat JSON file loaded via
// --config; file values are only applied where the corresponding flag was
// left at its zero value (for --lang: at its default "en"), so an explicit
// "--lang en" is still overridden by a file's lang.
type fileConfig struct {
	JSON    bool   `json:"json"`
	Lang    string `json:"lang"`
	Debug   bool   `json:"debug"`
	Minimap string `json:"minimap"`
}

type options struct {
	Minimap string `short:"m" long:"minimap" description:"dump raw minimap tile/color data to this path (for external rendering)" value-name:"PATH"`
	JSON    bool   `short:"j" long:"json" description:"print the decoded record as JSON"`
	Lang    string `long:"lang" description:"translation language tag" default:"en" value-name:"TAG"`
	Header  string `long:"header" description:"dump the inflated header buffer to this path" value-name:"PATH"`
	Body    string `long:"body" description:"dump the raw body buffer to this path" value-name:"PATH"`
	Debug   bool   `long:"debug" description:"enable verbose structured logging"`
	Config  string `short:"c" long:"config" description:"optional JSON config file, overridden by any flag also given" value-name:"PATH"`

	Args struct {
		Record string `positional-arg-name:"recfile" description:"recorded-game file to decode"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	os.Exit(run())
}

func run() int {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "aoe2rec"
	parser.LongDescription = "Decodes Age of Kings/Conquerors recorded-game files."

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return exitOK
		}
		return exitError
	}

	if opts.Config != "" {
		if err := applyFileConfig(opts.Config, &opts); err != nil {
			fmt.Fprintln(os.Stderr, "aoe2rec:", err)
			return exitError
		}
	}

	if opts.Debug {
		log.SetLogger(log.NewZerologAdapter(zerolog.New(os.Stderr).With().Timestamp().Logger()))
	}

	if opts.Lang != "" && opts.Lang != "en" {
		fmt.Fprintf(os.Stderr, "aoe2rec: no translation bundled for %q, falling back to English names\n", opts.Lang)
	}

	cfg := repparser.Config{
		Commands: true,
		MapData:  true,
		Debug:    opts.Debug || opts.Minimap != "" || opts.Header != "" || opts.Body != "",
	}

	buf := mustRead(opts.Args.Record)
	ident := rep.Identity{Filename: opts.Args.Record, FileSize: int64(len(buf))}
	if fi, statErr := os.Stat(opts.Args.Record); statErr == nil {
		ident.FileSize = fi.Size()
		ident.LastModifiedMs = fi.ModTime().UnixMilli()
	}
	cfg.Identity = &ident

	p, err := repparser.New(buf)
	if err != nil {
		fmt.Fprintln(os.Stderr, "aoe2rec:", err)
		return exitError
	}

	if opts.Header != "" {
		if err := p.DumpHeader(opts.Header); err != nil {
			fmt.Fprintln(os.Stderr, "aoe2rec: failed to dump header:", err)
			return exitError
		}
	}
	if opts.Body != "" {
		if err := p.DumpBody(opts.Body); err != nil {
			fmt.Fprintln(os.Stderr, "aoe2rec: failed to dump body:", err)
			return exitError
		}
	}

	r, err := p.Parse(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "aoe2rec: failed to parse recorded game:", err)
		return exitError
	}

	if opts.Minimap != "" {
		if r.MapData == nil || r.MapData.Debug == nil {
			fmt.Fprintln(os.Stderr, "aoe2rec: no minimap data available")
			return exitError
		}
		if err := os.WriteFile(opts.Minimap, r.MapData.Debug.Tiles, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "aoe2rec: failed to write minimap data:", err)
			return exitError
		}
	}

	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			fmt.Fprintln(os.Stderr, "aoe2rec: failed to encode output:", err)
			return exitError
		}
		return exitOK
	}

	printSummary(r)
	return exitOK
}

func mustRead(path string) []byte {
	buf, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "aoe2rec:", err)
		os.Exit(exitError)
	}
	return buf
}

func applyFileConfig(path string, opts *options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return err
	}
	if !opts.JSON {
		opts.JSON = fc.JSON
	}
	if opts.Lang == "en" {
		opts.Lang = fc.Lang
	}
	if !opts.Debug {
		opts.Debug = fc.Debug
	}
	if opts.Minimap == "" {
		opts.Minimap = fc.Minimap
	}
	if opts.Lang == "" {
		opts.Lang = "en"
	}
	return nil
}

func printSummary(r *rep.Replay) {
	h := r.Header
	if r.Identity != nil && r.Identity.Filename != "" {
		fmt.Printf("file:       %s (md5 %s)\n", r.Identity.Filename, r.Identity.MD5)
	}
	fmt.Printf("dialect:    %s\n", dialectName(h))
	fmt.Printf("map:        %s (%dx%d)\n", mapName(h), h.MapX, h.MapY)
	fmt.Printf("matchup:    %s\n", h.MatchupString())
	fmt.Printf("duration:   %s\n", durationString(r.Computed.DurationMs))
	fmt.Printf("guid:       %s\n", r.Computed.GUID)
	for _, p := range h.ValidPlayers() {
		winner := ""
		if p.Winner {
			winner = " (winner)"
		}
		fmt.Printf("  slot %d: %-20s %s%s\n", p.Slot, p.Name, civName(p), winner)
	}
}

func dialectName(h *rep.Header) string {
	if h.Dialect == nil {
		return "unknown"
	}
	return h.Dialect.Name
}

func mapName(h *rep.Header) string {
	if h.MapID == nil {
		return "unknown"
	}
	return h.MapID.Name
}

func civName(p *rep.Player) string {
	if p.Civ == nil {
		return "unknown"
	}
	return p.Civ.Name
}

func durationString(ms uint32) string {
	s := ms / 1000
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
}
