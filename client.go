// Copyright 2026 The hostctl Authors
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
//

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/openbmc/hostctl/model"
	"github.com/openbmc/hostctl/pkg/api"
)

const clientUsage = "init | boot | status | watch | debug-mode <on|off> | flash-side <primary|golden>"

// runClient executes a single command against the GRPC server at given address.
func runClient(ctx context.Context, address string, args []string) error {
	if len(args) == 0 {
		return errors.Errorf("command missing; expected %s", clientUsage)
	}
	conn, err := api.DialConn(address)
	if err != nil {
		return maskAny(err)
	}
	defer conn.Close()
	c := api.NewClient(conn)

	switch cmd, params := args[0], args[1:]; cmd {
	case "init":
		return c.Init(ctx)
	case "boot":
		return c.Boot(ctx)
	case "status":
		st, err := c.GetStatus(ctx)
		if err != nil {
			return maskAny(err)
		}
		return printJSON(st)
	case "watch":
		return c.WatchBooted(ctx, func(evt model.BootedEvent) {
			printJSON(evt)
		})
	case "debug-mode":
		if len(params) != 1 {
			return errors.New("expected on or off")
		}
		enabled, err := parseOnOff(params[0])
		if err != nil {
			return maskAny(err)
		}
		return c.SetDebugMode(ctx, enabled)
	case "flash-side":
		if len(params) != 1 {
			return errors.New("expected flash side")
		}
		side := model.FlashSide(params[0])
		if err := side.Validate(); err != nil {
			return maskAny(err)
		}
		return c.SetFlashSide(ctx, side)
	default:
		return errors.Errorf("unknown command '%s'; expected %s", cmd, clientUsage)
	}
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func printJSON(v interface{}) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return maskAny(err)
	}
	fmt.Fprintln(os.Stdout, string(encoded))
	return nil
}
