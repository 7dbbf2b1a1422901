// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ava-labs/stormxvm/chain"
)

type entry struct {
	name string
	new  func() chain.Action
}

var (
	byName = map[string]entry{}
	byID   = map[uint8]entry{}
)

func register(name string, f func() chain.Action) {
	e := entry{name: name, new: f}
	id := f().GetTypeID()
	if _, ok := byID[id]; ok {
		panic(fmt.Sprintf("duplicate action type id %d", id))
	}
	byName[name] = e
	byID[id] = e
}

func init() {
	register("initialize", func() chain.Action { return &Initialize{} })
	register("mint", func() chain.Action { return &Mint{} })
	register("transfer", func() chain.Action { return &Transfer{} })
	register("transferFrom", func() chain.Action { return &TransferFrom{} })
	register("approve", func() chain.Action { return &Approve{} })
	register("increaseAllowance", func() chain.Action { return &IncreaseAllowance{} })
	register("decreaseAllowance", func() chain.Action { return &DecreaseAllowance{} })
	register("lock", func() chain.Action { return &Lock{} })
	register("unlock", func() chain.Action { return &Unlock{} })
	register("reward", func() chain.Action { return &Reward{} })
	register("rewards", func() chain.Action { return &Rewards{} })
	register("transfers", func() chain.Action { return &Transfers{} })
	register("setAutoStaking", func() chain.Action { return &SetAutoStaking{} })
	register("enableTransfers", func() chain.Action { return &EnableTransfers{} })
	register("assignRewardRole", func() chain.Action { return &AssignRewardRole{} })
	register("addValidMinter", func() chain.Action { return &AddValidMinter{} })
	register("addGSNRecipient", func() chain.Action { return &AddRelayRecipient{} })
	register("deleteGSNRecipient", func() chain.Action { return &DeleteRelayRecipient{} })
	register("transferOwnership", func() chain.Action { return &TransferOwnership{} })

	register("batchTransfers", func() chain.Action { return &BatchTransfers{} })

	register("initializeMigration", func() chain.Action { return &InitializeMigration{} })
	register("convert", func() chain.Action { return &Convert{} })
	register("disableMigration", func() chain.Action { return &DisableMigration{} })
	register("transferOldTokenOwnership", func() chain.Action { return &TransferOldTokenOwnership{} })

	register("legacyMintTokens", func() chain.Action { return &LegacyMintTokens{} })
	register("legacyTransfer", func() chain.Action { return &LegacyTransfer{} })
	register("legacyTransferOwnership", func() chain.Action { return &LegacyTransferOwnership{} })
	register("legacyAcceptOwnership", func() chain.Action { return &LegacyAcceptOwnership{} })

	register("setChargeFee", func() chain.Action { return &SetChargeFee{} })
	register("setReserve", func() chain.Action { return &SetReserve{} })
}

// Names lists every registered action name in sorted order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the registered name of [typeID].
func Name(typeID uint8) (string, bool) {
	e, ok := byID[typeID]
	return e.name, ok
}

// Envelope is the JSON form of an action: its registered name plus its
// arguments.
type Envelope struct {
	Type string          `json:"type"`
	Args json.RawMessage `json:"args,omitempty"`
}

// New returns an empty action registered under [name].
func New(name string) (chain.Action, error) {
	e, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return e.new(), nil
}

// Parse builds the action described by [env].
func Parse(env *Envelope) (chain.Action, error) {
	a, err := New(env.Type)
	if err != nil {
		return nil, err
	}
	// Some actions take no arguments.
	if len(env.Args) == 0 {
		return a, nil
	}
	if err := json.Unmarshal(env.Args, a); err != nil {
		return nil, fmt.Errorf("%w: unable to parse %s args", err, env.Type)
	}
	return a, nil
}

// Unmarshal decodes a single JSON envelope.
func Unmarshal(b []byte) (chain.Action, error) {
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}
	return Parse(&env)
}

// Marshal encodes [a] as a JSON envelope.
func Marshal(a chain.Action) ([]byte, error) {
	name, ok := Name(a.GetTypeID())
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTypeID, a.GetTypeID())
	}
	args, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Envelope{Type: name, Args: args})
}
