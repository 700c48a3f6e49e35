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

package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/livekit/protocol/logger"

	"github.com/livekit/livekit-hammer/pkg/selector"
	"github.com/livekit/livekit-hammer/pkg/session"
)

const (
	generatedCLIFlagUsage = "generated"
	envPrefix             = "HAMMER"
)

var (
	ErrMissingServer   = errors.New("signal.url must be set")
	ErrNoUsers         = errors.New("fleet.users must be at least 1")
	ErrInvalidPorts    = errors.New("rtc.port_range_start must not exceed rtc.port_range_end")
	ErrInvalidICERole  = errors.New("rtc.ice_role must be controlled or controlling")
	ErrInvalidPolicies = errors.New("invalid session policy")
)

type Config struct {
	Signal         SignalConfig  `yaml:"signal,omitempty"`
	Fleet          FleetConfig   `yaml:"fleet,omitempty"`
	Session        SessionConfig `yaml:"session,omitempty"`
	RTC            RTCConfig     `yaml:"rtc,omitempty"`
	Logging        LoggingConfig `yaml:"logging,omitempty"`
	PrometheusPort uint32        `yaml:"prometheus_port,omitempty"`
	Development    bool          `yaml:"development,omitempty"`
}

type SignalConfig struct {
	URL          string        `yaml:"url,omitempty"`
	Domain       string        `yaml:"domain,omitempty"`
	Room         string        `yaml:"room,omitempty"`
	LoginTimeout time.Duration `yaml:"login_timeout,omitempty"`
}

type FleetConfig struct {
	Users              int           `yaml:"users,omitempty"`
	NickPrefix         string        `yaml:"nick_prefix,omitempty"`
	ConnectConcurrency int           `yaml:"connect_concurrency,omitempty"`
	Stagger            time.Duration `yaml:"stagger,omitempty"`
	Greeting           string        `yaml:"greeting,omitempty"`
	// empty disables replies to room chat
	ChatReply string `yaml:"chat_reply,omitempty"`
	// a burst of chat messages gets a single reply once the room is quiet for this long
	ChatReplyDelay time.Duration `yaml:"chat_reply_delay,omitempty"`
	ReportFile     string        `yaml:"report_file,omitempty"`
}

type SessionConfig struct {
	session.Config `yaml:",inline"`
	Direction      selector.DirectionPolicy `yaml:"direction,omitempty"`
	Codecs         selector.FormatPolicy    `yaml:"codecs,omitempty"`
}

type TURNServer struct {
	Host       string `yaml:"host,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Protocol   string `yaml:"protocol,omitempty"`
	Username   string `yaml:"username,omitempty"`
	Credential string `yaml:"credential,omitempty"`
}

type RTCConfig struct {
	STUNServers    []string     `yaml:"stun_servers,omitempty"`
	TURNServers    []TURNServer `yaml:"turn_servers,omitempty"`
	PortRangeStart uint16       `yaml:"port_range_start,omitempty"`
	PortRangeEnd   uint16       `yaml:"port_range_end,omitempty"`
	// advertised instead of the gathered host addresses
	NodeIPs       []string      `yaml:"node_ips,omitempty"`
	UseExternalIP bool          `yaml:"use_external_ip,omitempty"`
	Interfaces    []string      `yaml:"interfaces,omitempty"`
	GatherTimeout time.Duration `yaml:"gather_timeout,omitempty"`
	ICERole       string        `yaml:"ice_role,omitempty"`
	// DTLS handshake retransmission interval
	DTLSRetransmission time.Duration `yaml:"dtls_retransmission,omitempty"`
	SampleInterval     time.Duration `yaml:"sample_interval,omitempty"`
}

type LoggingConfig struct {
	logger.Config `yaml:",inline"`
	PionLevel     string `yaml:"pion_level,omitempty"`
}

var DefaultStunServers = []string{
	"stun.l.google.com:19302",
	"stun1.l.google.com:19302",
}

var DefaultConfig = Config{
	Signal: SignalConfig{
		Domain:       "meet.example.com",
		Room:         "hammer",
		LoginTimeout: 10 * time.Second,
	},
	Fleet: FleetConfig{
		Users:              1,
		NickPrefix:         "hammer",
		ConnectConcurrency: 10,
		Stagger:            100 * time.Millisecond,
		Greeting:           "Hello World!",
		ChatReply:          "I'm a fake user, I can't answer you.",
		ChatReplyDelay:     time.Second,
	},
	Session: SessionConfig{
		Config:    session.DefaultConfig(),
		Direction: selector.DirectionForceBoth,
	},
	RTC: RTCConfig{
		GatherTimeout:      5 * time.Second,
		ICERole:            "controlled",
		DTLSRetransmission: 100 * time.Millisecond,
		SampleInterval:     20 * time.Millisecond,
	},
	Logging: LoggingConfig{
		PionLevel: "error",
	},
}

func NewConfig(confString string, strictMode bool, c *cli.Context, baseFlags []cli.Flag) (*Config, error) {
	// start with defaults
	marshalled, err := yaml.Marshal(&DefaultConfig)
	if err != nil {
		return nil, err
	}

	var conf Config
	err = yaml.Unmarshal(marshalled, &conf)
	if err != nil {
		return nil, err
	}

	if confString != "" {
		decoder := yaml.NewDecoder(strings.NewReader(confString))
		decoder.KnownFields(strictMode)
		if err := decoder.Decode(&conf); err != nil {
			return nil, fmt.Errorf("could not parse config: %v", err)
		}
	}

	if c != nil {
		if err := conf.updateFromCLI(c, baseFlags); err != nil {
			return nil, err
		}
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	// expand env vars in filenames
	if conf.Fleet.ReportFile != "" {
		file, err := homedir.Expand(os.ExpandEnv(conf.Fleet.ReportFile))
		if err != nil {
			return nil, err
		}
		conf.Fleet.ReportFile = file
	}

	if conf.Logging.Level == "" && conf.Development {
		conf.Logging.Level = "debug"
	}

	return &conf, nil
}

func (conf *Config) Validate() error {
	if conf.Signal.URL == "" {
		return ErrMissingServer
	}
	if conf.Fleet.Users < 1 {
		return ErrNoUsers
	}
	if conf.RTC.PortRangeStart != 0 && conf.RTC.PortRangeEnd != 0 && conf.RTC.PortRangeStart > conf.RTC.PortRangeEnd {
		return ErrInvalidPorts
	}
	switch conf.RTC.ICERole {
	case "", "controlled", "controlling":
	default:
		return errors.Wrapf(ErrInvalidICERole, "got %q", conf.RTC.ICERole)
	}
	switch conf.Session.Direction {
	case "", selector.DirectionForceBoth, selector.DirectionMirror:
	default:
		return errors.Wrapf(ErrInvalidPolicies, "direction %q", conf.Session.Direction)
	}
	switch conf.Session.LateCandidates {
	case "", session.LateCandidatesAccept, session.LateCandidatesDrop:
	default:
		return errors.Wrapf(ErrInvalidPolicies, "late_candidates %q", conf.Session.LateCandidates)
	}
	return nil
}

type configNode struct {
	TypeNode  reflect.Value
	TagPrefix string
}

func (conf *Config) ToCLIFlagNames(existingFlags []cli.Flag) map[string]reflect.Value {
	existingFlagNames := map[string]bool{}
	for _, flag := range existingFlags {
		for _, flagName := range flag.Names() {
			existingFlagNames[flagName] = true
		}
	}

	flagNames := map[string]reflect.Value{}
	var currNode configNode
	nodes := []configNode{{reflect.ValueOf(conf).Elem(), ""}}
	for len(nodes) > 0 {
		currNode, nodes = nodes[0], nodes[1:]
		for i := 0; i < currNode.TypeNode.NumField(); i++ {
			// inspect yaml tag from struct field to get path
			field := currNode.TypeNode.Type().Field(i)
			yamlTagArray := strings.SplitN(field.Tag.Get("yaml"), ",", 2)
			yamlTag := yamlTagArray[0]
			isInline := len(yamlTagArray) > 1 && yamlTagArray[1] == "inline"
			if (yamlTag == "" && (!isInline || currNode.TagPrefix == "")) || yamlTag == "-" {
				continue
			}
			yamlPath := yamlTag
			if currNode.TagPrefix != "" {
				if isInline {
					yamlPath = currNode.TagPrefix
				} else {
					yamlPath = fmt.Sprintf("%s.%s", currNode.TagPrefix, yamlTag)
				}
			}
			if existingFlagNames[yamlPath] {
				continue
			}

			value := currNode.TypeNode.Field(i)
			if value.Kind() == reflect.Struct {
				nodes = append(nodes, configNode{value, yamlPath})
			} else {
				flagNames[yamlPath] = value
			}
		}
	}

	return flagNames
}

func GenerateCLIFlags(existingFlags []cli.Flag, hidden bool) ([]cli.Flag, error) {
	blankConfig := &Config{}
	flags := make([]cli.Flag, 0)
	for name, value := range blankConfig.ToCLIFlagNames(existingFlags) {
		kind := value.Kind()
		if kind == reflect.Ptr {
			kind = value.Type().Elem().Kind()
		}

		var flag cli.Flag
		envVar := fmt.Sprintf("%s_%s", envPrefix, strings.ToUpper(strings.ReplaceAll(name, ".", "_")))

		switch kind {
		case reflect.Bool:
			flag = &cli.BoolFlag{
				Name:   name,
				Usage:  generatedCLIFlagUsage,
				Hidden: hidden,
			}
		case reflect.String:
			flag = &cli.StringFlag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Int, reflect.Int32:
			flag = &cli.IntFlag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Int64:
			if value.Type() == reflect.TypeOf(time.Duration(0)) {
				flag = &cli.DurationFlag{
					Name:    name,
					EnvVars: []string{envVar},
					Usage:   generatedCLIFlagUsage,
					Hidden:  hidden,
				}
				break
			}
			flag = &cli.Int64Flag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Uint8, reflect.Uint16, reflect.Uint32:
			flag = &cli.UintFlag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Uint64:
			flag = &cli.Uint64Flag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Float32, reflect.Float64:
			flag = &cli.Float64Flag{
				Name:    name,
				EnvVars: []string{envVar},
				Usage:   generatedCLIFlagUsage,
				Hidden:  hidden,
			}
		case reflect.Slice, reflect.Map:
			// set through the config file only
			continue
		default:
			return flags, fmt.Errorf("cli flag generation unsupported for config type: %s is a %s", name, kind.String())
		}

		flags = append(flags, flag)
	}

	return flags, nil
}

func (conf *Config) updateFromCLI(c *cli.Context, baseFlags []cli.Flag) error {
	generatedFlagNames := conf.ToCLIFlagNames(baseFlags)
	for _, flag := range c.App.Flags {
		flagName := flag.Names()[0]

		// the `c.App.Name != "test"` check is needed because `c.IsSet(...)` is always false in unit tests
		if !c.IsSet(flagName) && c.App.Name != "test" {
			continue
		}

		configValue, ok := generatedFlagNames[flagName]
		if !ok {
			continue
		}

		kind := configValue.Kind()
		if kind == reflect.Ptr {
			// instantiate value to be set
			configValue.Set(reflect.New(configValue.Type().Elem()))

			kind = configValue.Type().Elem().Kind()
			configValue = configValue.Elem()
		}

		switch kind {
		case reflect.Bool:
			configValue.SetBool(c.Bool(flagName))
		case reflect.String:
			configValue.SetString(c.String(flagName))
		case reflect.Int, reflect.Int32:
			configValue.SetInt(int64(c.Int(flagName)))
		case reflect.Int64:
			if configValue.Type() == reflect.TypeOf(time.Duration(0)) {
				configValue.SetInt(int64(c.Duration(flagName)))
			} else {
				configValue.SetInt(c.Int64(flagName))
			}
		case reflect.Uint8, reflect.Uint16, reflect.Uint32:
			configValue.SetUint(uint64(c.Uint(flagName)))
		case reflect.Uint64:
			configValue.SetUint(c.Uint64(flagName))
		case reflect.Float32, reflect.Float64:
			configValue.SetFloat(c.Float64(flagName))
		default:
			return fmt.Errorf("unsupported generated cli flag type for config: %s is a %s", flagName, kind.String())
		}
	}

	if c.IsSet("dev") {
		conf.Development = c.Bool("dev")
	}
	if c.IsSet("server") {
		conf.Signal.URL = c.String("server")
	}
	if c.IsSet("room") {
		conf.Signal.Room = c.String("room")
	}
	if c.IsSet("users") {
		conf.Fleet.Users = c.Int("users")
	}
	return nil
}

func InitLoggerFromConfig(config *LoggingConfig) {
	logger.InitFromConfig(config.Config, "hammer")
}
