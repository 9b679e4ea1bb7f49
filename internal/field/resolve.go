package field

// Resolve walks p through doc. An absent member at any step short-circuits
// to Missing, as does a final null.
func Resolve(doc *Node, p Path) Value {
	cur := doc
	for _, s := range p.segs {
		if cur == nil {
			return Missing
		}
		cur = cur.member(s.Name)
		if s.Indexed {
			cur = cur.element(s.Index)
		}
	}
	return cur.value()
}

// ResolveKey parses key and resolves it. Prefer Resolve with a pre-parsed
// Path in loops.
func ResolveKey(doc *Node, key string) Value {
	return Resolve(doc, Parse(key))
}
