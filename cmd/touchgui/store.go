package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muurk/touchgui/internal/fixedpoint"
	"github.com/muurk/touchgui/internal/logging"
	"github.com/muurk/touchgui/internal/screen"
	"github.com/muurk/touchgui/internal/store"
	"github.com/muurk/touchgui/internal/ui"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeDumpCmd)
	storeCmd.AddCommand(storeGetCmd)
	storeCmd.AddCommand(storeSetCmd)
}

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect and edit persisted values",
	Long: `Inspect and edit the values numeric fields persist.

Each value occupies a 4-byte cell at the field's address. Cells are decoded
using the numeric field of the configured screen that owns the address;
addresses no field claims are shown as raw bytes.`,
}

var storeDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "List every stored value",
	Args:  cobra.NoArgs,
	RunE:  runStoreDump,
}

var storeGetCmd = &cobra.Command{
	Use:     "get ADDRESS",
	Short:   "Show the value stored at an address",
	Example: `  touchgui store get 0x10`,
	Args:    cobra.ExactArgs(1),
	RunE:    runStoreGet,
}

var storeSetCmd = &cobra.Command{
	Use:   "set ADDRESS VALUE",
	Short: "Write a value for a numeric field",
	Long: `Write a value at the address of a numeric field of the configured screen.

The value is checked against the field's shape the same way the keypad
editor checks it. The panel shows it the next time it starts.`,
	Example: `  touchgui store set 0x10 21.5 --screen oven.yaml`,
	Args:    cobra.ExactArgs(2),
	RunE:    runStoreSet,
}

// fieldsByAddress maps store addresses to the numeric fields that own them.
func fieldsByAddress(f *screen.File) map[uint16]screen.WidgetSpec {
	fields := make(map[uint16]screen.WidgetSpec)
	for _, w := range f.Widgets {
		if w.Kind == screen.KindNumeric && w.Address != nil {
			fields[uint16(*w.Address)] = w
		}
	}
	return fields
}

func parseAddress(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if v%store.CellSize != 0 {
		return 0, fmt.Errorf("address %#x is not aligned to %d-byte cells", v, store.CellSize)
	}
	return uint16(v), nil
}

func describeCell(e store.Entry, fields map[uint16]screen.WidgetSpec) (name, value string) {
	w, ok := fields[e.Address]
	if !ok {
		return fmt.Sprintf("0x%04x", e.Address), fmt.Sprintf("% x", e.Cell[:])
	}
	n := fixedpoint.FromCell(e.Cell, w.Decimals > 0)
	return fmt.Sprintf("0x%04x %s", e.Address, w.Name), fixedpoint.FormatText(n, w.Decimals)
}

func openStoreWithScreen() (store.Store, map[uint16]screen.WidgetSpec, error) {
	f, err := loadScreenFile(registry.Screen)
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return st, fieldsByAddress(f), nil
}

func runStoreDump(cmd *cobra.Command, args []string) error {
	st, fields, err := openStoreWithScreen()
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.List()
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	if len(entries) == 0 {
		printer.PrintWarning("Store is empty", map[string]string{"Store": registry.Store.Kind}, nil)
		return nil
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		name, value := describeCell(e, fields)
		lines = append(lines, fmt.Sprintf("%-20s %s", name, value))
	}
	printer.PrintBlock(fmt.Sprintf("%d stored value(s)", len(entries)), strings.Join(lines, "\n"))
	return nil
}

func runStoreGet(cmd *cobra.Command, args []string) error {
	addr, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	st, fields, err := openStoreWithScreen()
	if err != nil {
		return err
	}
	defer st.Close()

	cell, ok, err := st.Get(addr)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("nothing stored at 0x%04x", addr)
	}
	name, value := describeCell(store.Entry{Address: addr, Cell: cell}, fields)
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", name, value)
	return nil
}

func runStoreSet(cmd *cobra.Command, args []string) error {
	addr, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	st, fields, err := openStoreWithScreen()
	if err != nil {
		return err
	}
	defer st.Close()

	w, ok := fields[addr]
	if !ok {
		return fmt.Errorf("no numeric field uses address 0x%04x", addr)
	}
	field := w.Field()
	text := strings.TrimSpace(args[1])
	if len(text) > field.Width() {
		return fmt.Errorf("%s does not fit field %s (%s)", text, w.Name, field)
	}
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return fmt.Errorf("invalid number %q", text)
	}
	if !field.Signed && strings.HasPrefix(text, "-") {
		return fmt.Errorf("field %s is unsigned", w.Name)
	}
	if _, frac, ok := strings.Cut(text, "."); ok && len(frac) > field.Decimals {
		return fmt.Errorf("field %s takes %d decimal(s)", w.Name, field.Decimals)
	}
	n := field.Parse(text)
	if err := st.Put(addr, n.Cell()); err != nil {
		return err
	}
	logging.Info("Stored value", zap.String("widget", w.Name), zap.Uint16("address", addr), zap.Stringer("value", n))

	fmt.Fprintf(cmd.OutOrStdout(), "0x%04x %s = %s\n", addr, w.Name, fixedpoint.FormatText(n, w.Decimals))
	return nil
}
