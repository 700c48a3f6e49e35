// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-hammer/pkg/config"
	"github.com/livekit/livekit-hammer/pkg/hammer"
	"github.com/livekit/livekit-hammer/pkg/rtc"
	"github.com/livekit/livekit-hammer/pkg/telemetry/prometheus"
	"github.com/livekit/livekit-hammer/version"
)

var baseFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "config",
		Usage: "path to hammer config file",
	},
	&cli.StringFlag{
		Name:    "config-body",
		Usage:   "hammer config in YAML, typically passed in as an environment var in a container",
		EnvVars: []string{"HAMMER_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "server",
		Usage:   "websocket URL of the signaling server",
		EnvVars: []string{"HAMMER_SERVER"},
	},
	&cli.StringFlag{
		Name:    "room",
		Usage:   "name of the room to join",
		EnvVars: []string{"HAMMER_ROOM"},
	},
	&cli.IntFlag{
		Name:    "users",
		Usage:   "number of fake users to run",
		EnvVars: []string{"HAMMER_USERS"},
	},
	&cli.BoolFlag{
		Name:  "dev",
		Usage: "sets log-level to debug and console formatter",
	},
	&cli.BoolFlag{
		Name:   "disable-strict-config",
		Usage:  "disables strict config parsing",
		Hidden: true,
	},
}

func main() {
	generatedFlags, err := config.GenerateCLIFlags(baseFlags, true)
	if err != nil {
		fmt.Println(err)
	}

	app := &cli.App{
		Name:        "livekit-hammer",
		Usage:       "fake conference participants for load testing",
		Description: "run without subcommands to join the room with the configured fake users",
		Flags:       append(baseFlags, generatedFlags...),
		Action:      startHammer,
		Commands: []*cli.Command{
			{
				Name:   "external-ip",
				Usage:  "print the address the configured STUN servers see",
				Action: printExternalIP,
			},
			{
				Name:   "help-verbose",
				Usage:  "prints app help, including all generated configuration flags",
				Action: helpVerbose,
			},
		},
		Version: version.Version,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
	}
}

func getConfig(c *cli.Context) (*config.Config, error) {
	confString, err := getConfigString(c.String("config"), c.String("config-body"))
	if err != nil {
		return nil, err
	}

	strictMode := true
	if c.Bool("disable-strict-config") {
		strictMode = false
	}

	conf, err := config.NewConfig(confString, strictMode, c, baseFlags)
	if err != nil {
		return nil, err
	}
	config.InitLoggerFromConfig(&conf.Logging)
	return conf, nil
}

func startHammer(c *cli.Context) error {
	conf, err := getConfig(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rtcConf, err := rtc.NewWebRTCConfig(ctx, &conf.RTC, conf.Logging.PionLevel)
	if err != nil {
		return err
	}

	prometheus.Init()
	if conf.PrometheusPort > 0 {
		go func() {
			if err := prometheus.Serve(conf.PrometheusPort); err != nil {
				logger.Errorw("could not serve metrics", err)
			}
		}()
	}

	h := hammer.NewHammer(hammer.HammerParams{
		Config:  conf,
		NewUser: hammer.NewUserFactory(conf, rtcConf),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	stopped := make(chan struct{})
	go func() {
		sig := <-sigChan
		logger.Infow("exit requested, shutting down", "signal", sig)
		cancel()
		h.Stop()
		close(stopped)
	}()

	if err = h.Start(ctx); err != nil && ctx.Err() == nil {
		h.Stop()
		printReport(conf, h.Report())
		return err
	}
	<-stopped

	printReport(conf, h.Report())
	return nil
}

func printReport(conf *config.Config, report *hammer.Report) {
	report.WriteTable(os.Stdout)
	fmt.Print(report.String())
	if conf.Fleet.ReportFile == "" {
		return
	}
	if err := report.WriteFile(conf.Fleet.ReportFile); err != nil {
		logger.Errorw("could not write report", err, "file", conf.Fleet.ReportFile)
	}
}

func printExternalIP(c *cli.Context) error {
	conf, err := getConfig(c)
	if err != nil {
		return err
	}
	servers := conf.RTC.STUNServers
	if len(servers) == 0 {
		servers = config.DefaultStunServers
	}
	ip, err := config.GetExternalIP(c.Context, servers)
	if err != nil {
		return err
	}
	fmt.Println(ip)
	return nil
}

func helpVerbose(c *cli.Context) error {
	generatedFlags, err := config.GenerateCLIFlags(baseFlags, false)
	if err != nil {
		return err
	}

	c.App.Flags = append(baseFlags, generatedFlags...)
	return cli.ShowAppHelp(c)
}

func getConfigString(configFile string, inConfigBody string) (string, error) {
	if inConfigBody != "" || configFile == "" {
		return inConfigBody, nil
	}

	outConfigBody, err := os.ReadFile(configFile)
	if err != nil {
		return "", err
	}

	return string(outConfigBody), nil
}
