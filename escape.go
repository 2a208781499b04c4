package sqlfrag

// Escape, tek bir Value'yu literal SQL metnine çevirir.
//
// Örnek:
//
//	f, _ := sqlfrag.Escape(sqlfrag.String("foo'bar"))
//	f.SQL() // 'foo''bar'
func Escape(v Value) (Frag, error) {
	b, err := appendValue(nil, v)
	if err != nil {
		return Frag{}, err
	}
	return Frag{sql: string(b)}, nil
}

// EscapeValue, yerel bir Go değerini ValueOf ile çevirip kaçışını yapar.
func EscapeValue(v any) (Frag, error) {
	val, err := ValueOf(v)
	if err != nil {
		return Frag{}, err
	}
	return Escape(val)
}

// EscapeIdent, bir ismi tırnaklanmış haliyle döndürür.
func EscapeIdent(id Ident) (Frag, error) {
	b, err := appendIdent(nil, id)
	if err != nil {
		return Frag{}, err
	}
	return Frag{sql: string(b)}, nil
}
