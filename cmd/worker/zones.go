package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/eplus-at/eplus-resources/internal/platform/cli"
	zonebuilder "github.com/eplus-at/eplus-resources/internal/zone_builder"
)

func runZones(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("zones", flag.ContinueOnError)
	fs.SetOutput(out)

	createSample := fs.Bool("create-sample", false, "Write the sample single-family house.")
	roomType := fs.String("room-type", "", "Room type: "+strings.Join(zonebuilder.RoomTypes(), ", ")+".")
	name := fs.String("name", "", "Zone name.")
	dimensions := fs.String("dimensions", "", "Room size as \"width,depth,height\" in m (default: room type).")
	position := fs.String("position", "0,0,0", "Origin as \"x,y,z\" in m.")
	projectPath := fs.String("project-path", ".", "Project directory; files go to <project>/resources/zones.")
	layout := fs.String("layout", "", "YAML building layout to generate.")
	logLevel := fs.String("log-level", "info", "Logging level.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return cli.Usage("%v", err)
	}

	log, err := newLogger(*logLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	b := zonebuilder.NewBuilder(*projectPath, log)

	var path string
	switch {
	case *createSample:
		path, err = b.CreateSample()

	case *layout != "":
		var l zonebuilder.Layout
		if l, err = zonebuilder.LoadLayout(*layout); err != nil {
			return cli.Usage("%v", err)
		}
		base := strings.TrimSuffix(filepath.Base(*layout), filepath.Ext(*layout))
		path, err = b.SaveBuilding(l, base+".idf")

	case *roomType != "" && *name != "":
		cfg := zonebuilder.ZoneConfig{Name: *name, RoomType: *roomType}
		if _, ok := zonebuilder.DefaultsFor(*roomType); !ok {
			log.Warn("unknown room type, using generic defaults", "room_type", *roomType)
		}
		if *dimensions != "" {
			v, perr := cli.ParseFloats(*dimensions, 3)
			if perr != nil {
				return cli.Usage("--dimensions: %v", perr)
			}
			cfg.Dimensions = &zonebuilder.Dimensions{Width: v[0], Depth: v[1], Height: v[2]}
		}
		p, perr := cli.ParseFloats(*position, 3)
		if perr != nil {
			return cli.Usage("--position: %v", perr)
		}
		cfg.Position = zonebuilder.Position{X: p[0], Y: p[1], Z: p[2]}
		path, err = b.SaveZone(cfg, "")

	default:
		fs.Usage()
		return cli.Usage("zones: use --create-sample, --layout, or --room-type with --name")
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Zone file written: %s\n", path)
	return nil
}
