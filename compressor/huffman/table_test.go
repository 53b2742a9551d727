package huffman

import (
	"reflect"
	"strings"
	"testing"
)

func TestCodeTableThreeSymbols(t *testing.T) {
	table := CodeTable(mustTree(t, map[rune]int{'z': 2, 'k': 7, 'm': 24}))
	expect := map[rune]string{'z': "00", 'k': "01", 'm': "1"}
	if !reflect.DeepEqual(table, expect) {
		t.Errorf("wrong table:\n\texpect: %v\n\tactual: %v", expect, table)
	}
}

func TestCodeTableSingleSymbol(t *testing.T) {
	table := CodeTable(mustTree(t, map[rune]int{'a': 3}))
	expect := map[rune]string{'a': "0"}
	if !reflect.DeepEqual(table, expect) {
		t.Errorf("wrong table:\n\texpect: %v\n\tactual: %v", expect, table)
	}
}

func TestCodeTablePrefixFree(t *testing.T) {
	text := "sphinx of black quartz, judge my vow; pack my box with five dozen liquor jugs"
	table := CodeTable(mustTree(t, CountFrequencies(text)))
	for a, codeA := range table {
		if len(codeA) == 0 {
			t.Errorf("symbol %q has an empty code", a)
		}
		for _, c := range codeA {
			if c != '0' && c != '1' {
				t.Errorf("symbol %q has a non-binary code %q", a, codeA)
			}
		}
		for b, codeB := range table {
			if a == b {
				continue
			}
			if strings.HasPrefix(codeB, codeA) {
				t.Errorf("code %q (%q) is a prefix of %q (%q)", codeA, a, codeB, b)
			}
		}
	}
}
