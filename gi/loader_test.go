package gi

import (
	"strings"
	"testing"
)

const sampleDefinitions = `
types:
  - name: Clickable
    kind: interface
    signals:
      - name: clicked
        params: [int32, int32]
  - name: Widget
    kind: object
    interfaces: [Clickable]
    signals:
      - name: resize
        params: [int32, int32]
        return: void
      - name: rename
        params: [string]
        return: utf8
  - name: Color
    kind: enum
    gtype: 200
`

func TestLoadDefinitions(t *testing.T) {
	repo := NewRepository()
	if err := repo.LoadDefinitions([]byte(sampleDefinitions)); err != nil {
		t.Fatalf("load: %v", err)
	}

	names := repo.Names()
	want := []string{"Clickable", "Color", "Widget"}
	if len(names) != len(want) {
		t.Fatalf("Names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names = %v, want %v", names, want)
		}
	}

	gt, ok := repo.TypeByName("Widget")
	if !ok {
		t.Fatal("Widget not resolvable by name")
	}
	info := repo.FindByGType(gt)
	defer info.Unref()

	finder := info.(SignalFinder)

	resize := finder.FindSignal("resize")
	if resize == nil {
		t.Fatal("resize not found")
	}
	defer resize.Unref()
	tags := resize.ParamTags()
	if len(tags) != 2 || tags[0] != TagInt32 || tags[1] != TagInt32 {
		t.Fatalf("resize params = %v", tags)
	}
	if resize.ReturnTag() != TagVoid {
		t.Fatalf("resize return = %s", resize.ReturnTag())
	}

	rename := finder.FindSignal("rename")
	if rename == nil {
		t.Fatal("rename not found")
	}
	defer rename.Unref()
	if got := rename.ParamTags(); len(got) != 1 || got[0] != TagUTF8 {
		t.Fatalf("rename params = %v", got)
	}
	if rename.ReturnTag() != TagUTF8 {
		t.Fatalf("rename return = %s", rename.ReturnTag())
	}

	// Interfaces declared in the document resolve by name even when
	// they appear after the objects that use them.
	clicked := finder.FindSignal("clicked")
	if clicked == nil {
		t.Fatal("interface signal not reachable through object")
	}
	defer clicked.Unref()

	if gt, _ := repo.TypeByName("Color"); gt != 200 {
		t.Fatalf("explicit gtype not honored, got %d", gt)
	}
}

func TestLoadDefinitions_InterfaceOrder(t *testing.T) {
	repo := NewRepository()
	doc := `
types:
  - name: Widget
    kind: object
    interfaces: [Clickable]
  - name: Clickable
    kind: interface
    signals:
      - name: clicked
`
	if err := repo.LoadDefinitions([]byte(doc)); err != nil {
		t.Fatalf("forward interface reference should resolve: %v", err)
	}

	gt, _ := repo.TypeByName("Widget")
	info := repo.FindByGType(gt)
	defer info.Unref()
	s := info.(SignalFinder).FindSignal("clicked")
	if s == nil {
		t.Fatal("interface signal missing")
	}
	s.Unref()
}

func TestLoadDefinitions_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "malformed yaml",
			doc:  "types: [unclosed",
			want: "parse type definitions",
		},
		{
			name: "unknown kind",
			doc:  "types:\n  - name: X\n    kind: flags\n",
			want: "unknown kind",
		},
		{
			name: "unknown param type",
			doc:  "types:\n  - name: X\n    kind: object\n    signals:\n      - name: s\n        params: [quaternion]\n",
			want: "unknown type",
		},
		{
			name: "unknown return type",
			doc:  "types:\n  - name: X\n    kind: object\n    signals:\n      - name: s\n        return: quaternion\n",
			want: "unknown type",
		},
		{
			name: "unknown interface",
			doc:  "types:\n  - name: X\n    kind: object\n    interfaces: [Missing]\n",
			want: "unknown interface",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewRepository()
			err := repo.LoadDefinitions([]byte(tc.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
