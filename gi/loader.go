package gi

import (
	"os"

	"gopkg.in/yaml.v3"

	girerrors "github.com/backwards-rat-race/node-gir/errors"
)

// Definition file shape:
//
//	types:
//	  - name: Clickable
//	    kind: interface
//	    signals:
//	      - name: clicked
//	        params: [int32, int32]
//	  - name: Widget
//	    kind: object
//	    interfaces: [Clickable]
//	    signals:
//	      - name: resize
//	        params: [int32, int32]
//	        return: void

type typeDef struct {
	Name       string      `yaml:"name"`
	Kind       string      `yaml:"kind"`
	GType      uint64      `yaml:"gtype,omitempty"`
	Interfaces []string    `yaml:"interfaces,omitempty"`
	Signals    []signalDef `yaml:"signals,omitempty"`
}

type signalDef struct {
	Name   string   `yaml:"name"`
	Params []string `yaml:"params,omitempty"`
	Return string   `yaml:"return,omitempty"`
}

type definitions struct {
	Types []typeDef `yaml:"types"`
}

var tagsByName = map[string]TypeTag{
	"void":    TagVoid,
	"bool":    TagBoolean,
	"boolean": TagBoolean,
	"int8":    TagInt8,
	"uint8":   TagUint8,
	"int16":   TagInt16,
	"uint16":  TagUint16,
	"int32":   TagInt32,
	"uint32":  TagUint32,
	"int64":   TagInt64,
	"uint64":  TagUint64,
	"float":   TagFloat,
	"double":  TagDouble,
	"string":  TagUTF8,
	"utf8":    TagUTF8,
}

// LoadDefinitions registers the types described by a YAML document.
// Interfaces register before objects so objects can declare them.
func (r *Repository) LoadDefinitions(data []byte) error {
	var defs definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return girerrors.Load("parse type definitions", err)
	}

	ifaces := make(map[string]*InterfaceInfo)
	for _, td := range defs.Types {
		if td.Kind != "interface" {
			continue
		}
		info := NewInterface(td.Name, GType(td.GType))
		if err := addSignals(info.AddSignal, td.Signals); err != nil {
			return err
		}
		if _, err := r.Register(info); err != nil {
			return err
		}
		ifaces[td.Name] = info
	}

	for _, td := range defs.Types {
		switch td.Kind {
		case "interface":
			// first pass
		case "object":
			info := NewObject(td.Name, GType(td.GType))
			if err := addSignals(info.AddSignal, td.Signals); err != nil {
				return err
			}
			for _, name := range td.Interfaces {
				iface, ok := ifaces[name]
				if !ok {
					return girerrors.New(girerrors.PhaseLoad, girerrors.KindNotFound).
						Detail("object %q declares unknown interface %q", td.Name, name).
						Build()
				}
				info.AddInterface(iface)
			}
			if _, err := r.Register(info); err != nil {
				return err
			}
		case "enum":
			if _, err := r.Register(NewEnum(td.Name, GType(td.GType))); err != nil {
				return err
			}
		default:
			return girerrors.New(girerrors.PhaseLoad, girerrors.KindInvalidData).
				Detail("type %q has unknown kind %q", td.Name, td.Kind).
				Build()
		}
	}
	return nil
}

// LoadDefinitionsFile reads and registers a YAML definition file.
func (r *Repository) LoadDefinitionsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return girerrors.Load("read "+path, err)
	}
	return r.LoadDefinitions(data)
}

func addSignals(add func(*SignalInfo), defs []signalDef) error {
	for _, sd := range defs {
		ret := TagVoid
		if sd.Return != "" {
			tag, ok := tagsByName[sd.Return]
			if !ok {
				return unknownTag(sd.Name, sd.Return)
			}
			ret = tag
		}
		params := make([]TypeTag, 0, len(sd.Params))
		for _, p := range sd.Params {
			tag, ok := tagsByName[p]
			if !ok {
				return unknownTag(sd.Name, p)
			}
			params = append(params, tag)
		}
		add(NewSignal(sd.Name, ret, params...))
	}
	return nil
}

func unknownTag(signal, tag string) error {
	return girerrors.New(girerrors.PhaseLoad, girerrors.KindInvalidData).
		Detail("signal %q uses unknown type %q", signal, tag).
		Build()
}
