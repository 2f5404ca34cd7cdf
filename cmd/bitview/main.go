package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/bitfield/linear"
	"github.com/wippyai/bitfield/record"
	"github.com/wippyai/bitfield/witbits"
)

func main() {
	var (
		fields      = flag.String("fields", "", "Field list (name:type,...), type is bN, bool, u8, u16, u32 or u64")
		hexData     = flag.String("hex", "", "Initial buffer contents as hex")
		sets        = flag.String("set", "", "Assignments to apply (name=value,...)")
		name        = flag.String("name", "Record", "Layout name")
		unfilled    = flag.Bool("unfilled", false, "Allow a total width that is not a multiple of 8")
		diff        = flag.Bool("diff", false, "Print a unified diff of the record before and after -set")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *fields == "" {
		fmt.Fprintln(os.Stderr, "Usage: bitview -fields a:b9,b:b6,c:b13,d:b4 [-hex 87d53aeb] [-set a=391,...]")
		fmt.Fprintln(os.Stderr, "       bitview -fields ... -unfilled  (width not a multiple of 8)")
		fmt.Fprintln(os.Stderr, "       bitview -fields ... -set ... -diff")
		fmt.Fprintln(os.Stderr, "       bitview -fields ... -i         (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = l.Sync() }()
		record.SetLogger(l)
		witbits.SetLogger(l)
		linear.SetLogger(l)
	}

	layout, err := compileLayout(*name, *fields, *unfilled)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(layout, *hexData); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(os.Stdout, layout, *hexData, *sets, *diff); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func compileLayout(name, fields string, unfilled bool) (*record.Layout, error) {
	defs, err := parseFields(fields)
	if err != nil {
		return nil, err
	}
	return record.Compile(name, defs, record.Filled(!unfilled))
}

// run loads the buffer, applies assignments field by field through a
// memory view, and prints the result.
func run(w io.Writer, layout *record.Layout, hexData, sets string, diff bool) error {
	buf, err := initialBytes(layout, hexData)
	if err != nil {
		return err
	}

	assigns, err := parseAssignments(sets)
	if err != nil {
		return err
	}

	view := linear.View{Mem: linear.Bytes(buf), Layout: layout}
	before, err := view.Load()
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	for _, a := range assigns {
		f, ok := layout.Field(a.name)
		if !ok {
			return fmt.Errorf("set %s: unknown field", a.name)
		}
		v, err := parseValue(f.Spec, a.value)
		if err != nil {
			return fmt.Errorf("set %s: %w", a.name, err)
		}
		if err := view.Set(a.name, v); err != nil {
			return fmt.Errorf("set %s: %w", a.name, err)
		}
	}

	after, err := view.Load()
	if err != nil {
		return err
	}

	if diff {
		from, to := render(before), render(after)
		edits := myers.ComputeEdits(span.URIFromPath("before"), from, to)
		fmt.Fprint(w, gotextdiff.ToUnified("before", "after", from, edits))
		return nil
	}
	fmt.Fprint(w, render(after))
	return nil
}

// render formats a record as a field table followed by its bytes.
func render(r *record.Record) string {
	var b bytes.Buffer
	l := r.Layout()
	fmt.Fprintf(&b, "%s: %d bits, %d bytes\n\n", l.Name(), l.Bits(), l.Size())

	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"Field", "Offset", "Bits", "Raw", "Value"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, f := range l.Fields() {
		row := []string{f.Name, fmt.Sprint(f.Offset), fmt.Sprint(f.Bits()), "", ""}
		raw, err := r.Raw(f.Name)
		if err != nil {
			row[4] = err.Error()
			table.Append(row)
			continue
		}
		row[3] = fmt.Sprintf("%#x", raw.Big())
		if v, err := r.Get(f.Name); err != nil {
			row[4] = err.Error()
		} else {
			row[4] = fmt.Sprint(v)
		}
		table.Append(row)
	}
	table.Render()

	fmt.Fprintf(&b, "\nbytes: %s\n", strings.TrimSpace(fmt.Sprintf("% x", r.Bytes())))
	return b.String()
}
