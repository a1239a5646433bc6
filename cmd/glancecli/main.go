package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"yunion.io/x/log"
	"yunion.io/x/pkg/util/shellutils"
	"yunion.io/x/structarg"

	"yunion.io/x/glancestate/cmd/glancecli/shell"
	"yunion.io/x/glancestate/pkg/glance"
	"yunion.io/x/glancestate/pkg/imagestate"
	"yunion.io/x/glancestate/pkg/mcclient"
)

type BaseOptions struct {
	Help       bool   `help:"Show help" short-token:"h"`
	Debug      bool   `help:"Show debug information"`
	Config     string `help:"Path to the profiles configuration file" default:"$GLANCECLI_CONFIG"`
	Profile    string `help:"Name of the credential profile to use" default:"$GLANCECLI_PROFILE"`
	ApiVersion int    `help:"Image service API version" default:"2" choices:"1|2"`
	Test       bool   `help:"Dry run, report what would change without changing it"`
	Timeout    int    `help:"Timeout in seconds when waiting for an image or task" default:"30"`
	Interval   int    `help:"Poll interval in seconds when waiting for an image or task" default:"5"`
	SUBCOMMAND string `help:"glancecli subcommand" subcommand:"true"`
}

func showErrorAndExit(err error) {
	log.Errorf("%s", err)
	os.Exit(1)
}

func getSubcommandParser() (*structarg.ArgumentParser, error) {
	parser, err := structarg.NewArgumentParser(
		&BaseOptions{},
		"glancecli",
		"Command-line interface to the image catalog service",
		`See "glancecli help COMMAND" for help on a specific command.`,
	)
	if err != nil {
		return nil, err
	}
	subcmd := parser.GetSubcommand()
	if subcmd == nil {
		return nil, fmt.Errorf("No subcommand argument.")
	}
	type HelpOptions struct {
		SUBCOMMAND string `help:"sub-command name"`
	}
	shellutils.R(&HelpOptions{}, "help", "Show help of a subcommand", func(args *HelpOptions) error {
		helpstr, e := subcmd.SubHelpString(args.SUBCOMMAND)
		if e != nil {
			return e
		} else {
			fmt.Print(helpstr)
			return nil
		}
	})
	for _, v := range shellutils.CommandTable {
		_, e := subcmd.AddSubParser(v.Options, v.Command, v.Desc, v.Callback)
		if e != nil {
			return nil, e
		}
	}
	return parser, nil
}

func newEnv(options *BaseOptions) (*shell.SEnv, error) {
	config := &mcclient.SProfilesConfig{}
	if len(options.Config) > 0 {
		var err error
		config, err = mcclient.LoadProfilesFile(options.Config)
		if err != nil {
			return nil, err
		}
	}
	opts, err := config.GetProfile(options.Profile)
	if err != nil {
		return nil, err
	}
	cli, err := glance.NewGlanceClient(context.Background(), opts, options.ApiVersion, options.Debug)
	if err != nil {
		return nil, err
	}
	rec := imagestate.NewReconciler(cli).
		SetTest(options.Test).
		SetTimeout(time.Duration(options.Timeout) * time.Second).
		SetInterval(time.Duration(options.Interval) * time.Second)
	return &shell.SEnv{Client: cli, Reconciler: rec}, nil
}

func main() {
	parser, err := getSubcommandParser()
	if err != nil {
		showErrorAndExit(err)
	}

	err = parser.ParseArgs(os.Args[1:], false)
	options := parser.Options().(*BaseOptions)

	if options.Help {
		fmt.Print(parser.HelpString())
		return
	}

	subcmd := parser.GetSubcommand()
	subparser := subcmd.GetSubParser()
	if err != nil {
		if subparser != nil {
			fmt.Print(subparser.Usage())
		} else {
			fmt.Print(parser.Usage())
		}
		showErrorAndExit(err)
		return
	}

	suboptions := subparser.Options()
	var args []interface{}
	if options.SUBCOMMAND == "help" {
		args = append(args, suboptions)
	} else {
		env, err := newEnv(options)
		if err != nil {
			showErrorAndExit(err)
		}
		args = append(args, env, suboptions)
	}
	err = subcmd.Invoke(args...)
	if err != nil {
		showErrorAndExit(err)
	}
}
