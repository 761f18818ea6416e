package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	nodegir "github.com/backwards-rat-race/node-gir"
	"github.com/backwards-rat-race/node-gir/closure"
	"github.com/backwards-rat-race/node-gir/gi"
	"github.com/backwards-rat-race/node-gir/gsignal"
	"github.com/backwards-rat-race/node-gir/gvalue"
	"github.com/backwards-rat-race/node-gir/js"
)

func main() {
	var (
		typesFile   = flag.String("types", "", "Path to YAML type definitions")
		typeName    = flag.String("type", "", "Type to instantiate")
		signalName  = flag.String("signal", "", "Signal to connect and emit")
		argsStr     = flag.String("args", "", "Signal parameter values (comma-separated)")
		resultStr   = flag.String("result", "", "Value the callback returns (default: none)")
		list        = flag.Bool("list", false, "List types and signals and exit")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *typesFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: girsig -types <types.yaml> -type <name> -signal <name> [-args v1,v2]")
		fmt.Fprintln(os.Stderr, "       girsig -types <types.yaml> -list")
		fmt.Fprintln(os.Stderr, "       girsig -types <types.yaml> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			closure.SetLogger(logger)
			gsignal.SetLogger(logger)
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*typesFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*typesFile, *typeName, *signalName, *argsStr, *resultStr, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(typesFile, typeName, signalName, argsStr, resultStr string, listOnly bool) error {
	bridge := nodegir.New()
	defer func() {
		if err := bridge.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}()

	if err := bridge.Repo.LoadDefinitionsFile(typesFile); err != nil {
		return err
	}

	if listOnly {
		for _, line := range listSignals(bridge.Repo) {
			fmt.Println(line)
		}
		return nil
	}

	if typeName == "" || signalName == "" {
		return fmt.Errorf("both -type and -signal are required (or use -list)")
	}

	gt, ok := bridge.Repo.TypeByName(typeName)
	if !ok {
		return fmt.Errorf("type %q not defined in %s", typeName, typesFile)
	}
	inst := gsignal.NewInstance(strings.ToLower(typeName)+"0", gt)

	cb := js.NewFunction("handler", func(this js.Value, args []js.Value) js.Value {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		fmt.Printf("callback(%s)\n", strings.Join(parts, ", "))
		return parseJSValue(resultStr)
	})

	id, ok := bridge.Connect(inst, signalName, cb)
	if !ok {
		return fmt.Errorf("type %q declares no signal %q", typeName, signalName)
	}
	defer bridge.Sys.Disconnect(id)

	params, ret, err := buildEmission(bridge.Repo, gt, signalName, argsStr)
	if err != nil {
		return err
	}

	fmt.Printf("emit %s::%s\n", typeName, signalName)
	bridge.Emit(inst, signalName, ret, params...)

	for _, thrown := range bridge.RT.TakeThrown() {
		fmt.Printf("uncaught: %v\n", thrown)
	}
	if ret != nil && ret.IsSet() {
		fmt.Printf("return: %s\n", ret.String())
	}
	return nil
}

// listSignals renders "Type::signal(params) -> return" lines for every
// signal-capable registered type.
func listSignals(repo *gi.Repository) []string {
	var lines []string
	for _, name := range repo.Names() {
		gt, _ := repo.TypeByName(name)
		info := repo.FindByGType(gt)
		if info == nil {
			continue
		}
		var guard gi.Guard
		guard.Add(info)

		lines = append(lines, fmt.Sprintf("%s (%s)", name, info.Kind()))
		for _, sig := range signalLines(info) {
			lines = append(lines, "  "+sig)
		}
		guard.Release()
	}
	return lines
}

// buildEmission parses CLI argument strings against the signal's
// declared parameter types and prepares the return slot.
func buildEmission(repo *gi.Repository, gt gi.GType, signalName, argsStr string) ([]gvalue.Value, *gvalue.Value, error) {
	info := repo.FindByGType(gt)
	if info == nil {
		return nil, nil, fmt.Errorf("type not registered")
	}
	var guard gi.Guard
	guard.Add(info)
	defer guard.Release()

	finder, ok := info.(gi.SignalFinder)
	if !ok {
		return nil, nil, fmt.Errorf("%s is not an object or interface type", info.Name())
	}
	si := finder.FindSignal(signalName)
	if si == nil {
		return nil, nil, fmt.Errorf("no signal %q", signalName)
	}
	guard.Add(si)

	var raw []string
	if argsStr != "" {
		raw = strings.Split(argsStr, ",")
	}
	if len(raw) != si.NParams() {
		return nil, nil, fmt.Errorf("signal %q declares %d parameter(s), got %d", signalName, si.NParams(), len(raw))
	}

	params := make([]gvalue.Value, len(raw))
	for i, text := range raw {
		arg := si.Param(i)
		guard.Add(arg)
		ti := arg.Type()
		guard.Add(ti)

		v, err := parseGValue(strings.TrimSpace(text), ti.Tag())
		if err != nil {
			return nil, nil, fmt.Errorf("arg %d: %w", i, err)
		}
		params[i] = v
	}

	if si.ReturnTag() == gi.TagVoid {
		return params, nil, nil
	}
	ret := gvalue.New(si.ReturnTag())
	return params, &ret, nil
}

func signalLines(info gi.Info) []string {
	finder, ok := info.(gi.SignalFinder)
	if !ok {
		return nil
	}
	var lines []string
	for _, s := range finder.Signals() {
		lines = append(lines, formatSignal(s))
	}
	return lines
}

func formatSignal(s *gi.SignalInfo) string {
	var params []string
	for _, t := range s.ParamTags() {
		params = append(params, t.String())
	}
	line := fmt.Sprintf("%s(%s)", s.Name(), strings.Join(params, ", "))
	if s.ReturnTag() != gi.TagVoid {
		line += " -> " + s.ReturnTag().String()
	}
	return line
}

func parseGValue(text string, tag gi.TypeTag) (gvalue.Value, error) {
	switch tag {
	case gi.TagBoolean:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return gvalue.Value{}, fmt.Errorf("%q is not a boolean", text)
		}
		return gvalue.NewBool(b), nil
	case gi.TagInt8, gi.TagInt16, gi.TagInt32, gi.TagInt64:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return gvalue.Value{}, fmt.Errorf("%q is not an integer", text)
		}
		return gvalue.NewInt(tag, i), nil
	case gi.TagUint8, gi.TagUint16, gi.TagUint32, gi.TagUint64:
		u, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return gvalue.Value{}, fmt.Errorf("%q is not an unsigned integer", text)
		}
		return gvalue.NewUint(tag, u), nil
	case gi.TagFloat, gi.TagDouble:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return gvalue.Value{}, fmt.Errorf("%q is not a number", text)
		}
		return gvalue.NewFloat(tag, f), nil
	case gi.TagUTF8:
		return gvalue.NewString(text), nil
	default:
		return gvalue.Value{}, fmt.Errorf("unsupported parameter type %s", tag)
	}
}

// parseJSValue interprets a CLI result string as the runtime value the
// callback should return. Empty means no value.
func parseJSValue(text string) js.Value {
	if text == "" {
		return js.Undefined()
	}
	if text == "true" || text == "false" {
		return js.Boolean(text == "true")
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return js.Number(f)
	}
	return js.String(text)
}
