// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/stormxvm/actions"
	"github.com/ava-labs/stormxvm/chain"
	"github.com/ava-labs/stormxvm/codec"
	"github.com/ava-labs/stormxvm/utils"
)

// step is a single call of an exec script.
type step struct {
	Actor   codec.Address     `json:"actor"`
	Relayed bool              `json:"relayed"`
	Action  *actions.Envelope `json:"action"`
}

var execCmd = &cobra.Command{
	Use:   "exec SCRIPT",
	Short: "Apply a JSON script of calls to the local database",
	Long: `exec parses SCRIPT, a JSON array of {"actor", "relayed", "action"} steps
where action is {"type": NAME, "args": {...}}, and executes every step in order.
A failed call is recorded and does not stop the script.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("%w: unable to read script", err)
		}
		var steps []*step
		if err := json.Unmarshal(b, &steps); err != nil {
			return fmt.Errorf("%w: unable to parse script", err)
		}
		calls := make([]chain.Action, len(steps))
		for i, s := range steps {
			if s.Action == nil {
				return fmt.Errorf("step %d has no action", i)
			}
			calls[i], err = actions.Parse(s.Action)
			if err != nil {
				return fmt.Errorf("%w: step %d", err, i)
			}
		}
		isJSON, err := isJSONOutputRequested(cmd)
		if err != nil {
			return err
		}

		ctx := context.Background()
		c, err := openController(ctx, cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		p := c.Processor()
		results := make([]*chain.Result, 0, len(steps))
		for i, s := range steps {
			var res *chain.Result
			if s.Relayed {
				res, err = p.ExecuteRelayed(ctx, s.Actor, calls[i])
			} else {
				res, err = p.Execute(ctx, s.Actor, calls[i])
			}
			if err != nil {
				if !isJSON {
					utils.Outf("{{red}}step %d rejected:{{/}} %v\n", i, err)
				}
				return err
			}
			results = append(results, res)
			if !isJSON {
				printResult(i, s.Action.Type, res)
			}
		}
		if isJSON {
			return printJSON(results)
		}
		return nil
	},
}

func printResult(i int, name string, res *chain.Result) {
	if res.Success {
		utils.Outf(
			"{{green}}step %d %s succeeded{{/}} {{light-gray}}call=%s fee=%s{{/}}\n",
			i, name, res.CallID, formatFee(res),
		)
		return
	}
	utils.Outf(
		"{{orange}}step %d %s failed:{{/}} %v {{light-gray}}call=%s fee=%s{{/}}\n",
		i, name, res.Err, res.CallID, formatFee(res),
	)
}
