package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	config "github.com/okian/scrim/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaults(t *testing.T) {
	Convey("Given no file or environment overrides", t, func() {
		ctx := context.Background()

		Convey("When the configuration loads", func() {
			cfg, err := config.Load(ctx)

			Convey("Then defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.QueueSize, ShouldEqual, 10_000)
				So(cfg.BaseRating, ShouldAlmostEqual, 1400.0)
				So(cfg.Tau, ShouldAlmostEqual, 0.5)
				So(cfg.Lambda, ShouldAlmostEqual, 0.8)
				So(cfg.SeparateTopPlayers, ShouldBeTrue)
				So(cfg.MaxCombinations, ShouldEqual, 10_000)
			})
		})
	})
}

func TestEnvOverrides(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		ctx := context.Background()
		t.Setenv("SCRIM_ADDR", ":7070")
		t.Setenv("SCRIM_TAU", "0.8")
		t.Setenv("SCRIM_SEPARATE_TOP_PLAYERS", "false")

		Convey("When the configuration loads", func() {
			cfg, err := config.Load(ctx)

			Convey("Then the env layer wins over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.Tau, ShouldAlmostEqual, 0.8)
				So(cfg.SeparateTopPlayers, ShouldBeFalse)

				Convey("And untouched keys keep their defaults", func() {
					So(cfg.QueueSize, ShouldEqual, 10_000)
				})
			})
		})
	})
}

func TestFileLayer(t *testing.T) {
	Convey("Given a YAML configuration file", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "scrim.yaml")
		So(os.WriteFile(path, []byte("addr: \":6060\"\nworker_count: 3\nlambda: 1.2\n"), 0o600), ShouldBeNil)
		t.Setenv("SCRIM_CONFIG", path)

		Convey("When the configuration loads", func() {
			cfg, err := config.Load(ctx)

			Convey("Then file values override defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.WorkerCount, ShouldEqual, 3)
				So(cfg.Lambda, ShouldAlmostEqual, 1.2)
			})
		})

		Convey("When env overrides the same key", func() {
			t.Setenv("SCRIM_ADDR", ":5050")
			cfg, err := config.Load(ctx)

			Convey("Then env wins over the file", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":5050")
			})
		})
	})
}

func TestFileMissing(t *testing.T) {
	Convey("Given a config path pointing nowhere", t, func() {
		ctx := context.Background()
		t.Setenv("SCRIM_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

		Convey("When the configuration loads", func() {
			_, err := config.Load(ctx)

			Convey("Then loading fails with a load error", func() {
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})
	})
}

func TestValidation(t *testing.T) {
	Convey("Given invalid overrides", t, func() {
		ctx := context.Background()

		cases := map[string]string{
			"SCRIM_TAU":                "-1",
			"SCRIM_DEFAULT_RD":         "0",
			"SCRIM_DEFAULT_VOLATILITY": "-0.1",
			"SCRIM_LAMBDA":             "-0.5",
			"SCRIM_MAX_COMBINATIONS":   "0",
		}
		for key, val := range cases {
			key, val := key, val
			Convey("When "+key+" is "+val, func() {
				t.Setenv(key, val)
				_, err := config.Load(ctx)

				Convey("Then validation rejects the configuration", func() {
					So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
				})
			})
		}
	})
}
