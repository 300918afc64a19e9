// Package value provides a schema-less JSON value with stable key order.
//
// A Value is a tagged union over the six JSON kinds. Objects keep their members
// in document order and numbers keep the literal text they were parsed from, so
// a record that is parsed and re-encoded without modification comes back with
// identical numbers and identical key order, only with insignificant
// whitespace removed.
//
// # Parsing
//
//	v, err := value.Parse([]byte(`{"sym":"X","bid":"100","tags":[{"px":1}]}`))
//	if err != nil {
//	    return err
//	}
//
// Parse accepts exactly one JSON document; anything after it other than
// whitespace is an error. Nesting deeper than DefaultMaxDepth is rejected
// (see ParseDepth).
//
// # Mutation
//
// Elems and Members return the backing slices, so a walker can replace
// children in place:
//
//	for i := range v.Members() {
//	    m := &v.Members()[i]
//	    if m.Key == "bid" {
//	        m.Value = value.Float(101.0)
//	    }
//	}
//
// # Encoding
//
// AppendCompact writes the compact form (no whitespace, "," and ":"
// separators) into a caller-supplied buffer.
package value
