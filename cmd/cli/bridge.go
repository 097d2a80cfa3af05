// cmd/cli/bridge.go – Cobra CLI for the cross-chain bridge module
// -----------------------------------------------------------------
// Layout mirrors cross_chain_bridge.go: controller wrapping core calls,
// then the command declarations, then export.
// -----------------------------------------------------------------
package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	core "synbridge/core"
)

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

// ---------------------------------------------------------------------
// Controller
// ---------------------------------------------------------------------

type BridgeController struct {
	Ledger core.CustodyLedger
}

func (c *BridgeController) Lock(from core.Address, target core.RemoteAddress, amount core.Amount) (core.LockResult, error) {
	ctx := &core.Context{Caller: from, Ledger: c.Ledger}
	return core.Lock(ctx, core.LockRequest{Target: target, Amount: amount})
}

func (c *BridgeController) Witness(from core.Address, id uint64, sig []byte) error {
	ctx := &core.Context{Caller: from, Ledger: c.Ledger}
	return core.Witness(ctx, core.WitnessRequest{ID: id, Signature: sig})
}

func (c *BridgeController) Release(from, target core.Address, id uint64, amount core.Amount) error {
	ctx := &core.Context{Caller: from, Ledger: c.Ledger}
	return core.Release(ctx, core.ReleaseRequest{ID: id, Target: target, Amount: amount})
}

// ---------------------------------------------------------------------
// CLI commands
// ---------------------------------------------------------------------

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Interact with the cross-chain bridge module",
}

var bridgeLockCmd = &cobra.Command{
	Use:   "lock <from> <target> <amount> <denom>",
	Short: "Lock assets locally for an outgoing bridge transfer",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := core.ParseAddress(args[0])
		if err != nil {
			return err
		}
		var target core.RemoteAddress
		raw, err := decodeHex(args[1])
		if err != nil || len(raw) != len(target) {
			return fmt.Errorf("invalid remote address")
		}
		copy(target[:], raw)
		qty, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			return err
		}
		ctrl := &BridgeController{Ledger: defaultLedger()}
		res, err := ctrl.Lock(from, target, core.Amount{Quantity: qty, Denomination: core.Denomination(args[3])})
		if err != nil {
			return err
		}
		enc, _ := json.MarshalIndent(res, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(enc))
		return nil
	},
}

var bridgeWitnessCmd = &cobra.Command{
	Use:   "witness <witness_addr> <outgoing_id> <sig_hex>",
	Short: "Submit a witness signature for an outgoing slot",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := core.ParseAddress(args[0])
		if err != nil {
			return err
		}
		id, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return err
		}
		sig, err := decodeHex(args[2])
		if err != nil {
			return err
		}
		ctrl := &BridgeController{Ledger: defaultLedger()}
		if err := ctrl.Witness(from, id, sig); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "signature recorded")
		return nil
	},
}

var bridgeReleaseCmd = &cobra.Command{
	Use:   "release <witness_addr> <incoming_id> <target> <amount> <denom>",
	Short: "Attest a remote release for an incoming slot",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := core.ParseAddress(args[0])
		if err != nil {
			return err
		}
		id, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return err
		}
		target, err := core.ParseAddress(args[2])
		if err != nil {
			return err
		}
		qty, err := strconv.ParseUint(args[3], 10, 64)
		if err != nil {
			return err
		}
		ctrl := &BridgeController{Ledger: defaultLedger()}
		if err := ctrl.Release(from, target, id, core.Amount{Quantity: qty, Denomination: core.Denomination(args[4])}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "release recorded")
		return nil
	},
}

var bridgeParamsCmd = &cobra.Command{
	Use:   "params",
	Short: "Show the effective bridge genesis parameters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := core.QueryParameters()
		if err != nil {
			return err
		}
		enc, _ := json.MarshalIndent(p, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(enc))
		return nil
	},
}

var bridgeNextSeqCmd = &cobra.Command{
	Use:   "next-sequence",
	Short: "Show the next outgoing/incoming sequence numbers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := core.NextSequenceNumbers()
		if err != nil {
			return err
		}
		enc, _ := json.MarshalIndent(res, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(enc))
		return nil
	},
}

func init() {
	bridgeCmd.AddCommand(bridgeLockCmd, bridgeWitnessCmd, bridgeReleaseCmd, bridgeParamsCmd, bridgeNextSeqCmd)
}

// Export
var BridgeCmd = bridgeCmd

// defaultLedger is a process-wide in-memory CustodyLedger for CLI use
// outside a hosted runtime; a real deployment wires the accounts
// sub-module's implementation in instead.
var defaultLedger = func() func() core.CustodyLedger {
	l := core.NewMemLedger()
	return func() core.CustodyLedger { return l }
}()
