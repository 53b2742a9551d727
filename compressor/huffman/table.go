package huffman

// CodeTable derives the prefix code for every symbol in the tree. Descending
// to the left child appends '0', descending to the right child appends '1',
// and the accumulated path at each leaf becomes that symbol's code. A tree
// that is a single leaf carries no prefix information of its own, so its
// lone symbol gets the one-bit code "0".
func CodeTable(tree Tree) map[rune]string {
	symbolEnc := make(map[rune]string)
	if l, ok := tree.(leaf); ok {
		symbolEnc[l.symbol] = "0"
		return symbolEnc
	}
	return collectCodes(tree, symbolEnc, []byte{})
}

func collectCodes(tree Tree, symbolEnc map[rune]string, currentPrefix []byte) map[rune]string {
	switch t := tree.(type) {
	case leaf:
		symbolEnc[t.symbol] = string(currentPrefix)
	case node:
		symbolEnc = collectCodes(t.left, symbolEnc, append(currentPrefix, '0'))
		symbolEnc = collectCodes(t.right, symbolEnc, append(currentPrefix, '1'))
	}
	return symbolEnc
}
