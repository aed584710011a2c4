// Package querystring serializes structured filter expressions into query
// strings using nested-bracket notation, and parses them back.
//
// Values are built from a small tagged variant rather than through
// reflection: a Value is a scalar (string, number, bool or null), a List or an
// ordered Map.
//
//	filter := querystring.Map(
//	    querystring.F("fields", querystring.String("title,slug")),
//	    querystring.F("and", querystring.List(
//	        querystring.Map(querystring.F("slug", querystring.Map(
//	            querystring.F("eq", querystring.String("x")),
//	        ))),
//	    )),
//	)
//
//	querystring.Encode(filter)
//	// fields=title%2Cslug&and[0][slug][eq]=x
//
//	querystring.Encode(filter, querystring.WithSkipIndices())
//	// fields=title%2Cslug&and[][slug][eq]=x
//
// Encoding Rules:
//
//   - a map {a: {b: 1}} becomes a[b]=1
//   - a list {a: [1, 2]} becomes a[0]=1&a[1]=2, or a[]=1&a[]=2 with WithSkipIndices
//   - null becomes a= and empty lists or maps produce nothing
//   - keys and values are escaped as query components: spaces become "+" and
//     every reserved character, including !'()* and ",", becomes %XX;
//     the brackets themselves are left literal
//   - only a Map at the top level produces output
//
// Map keys keep their insertion order unless WithSortedKeys is given.
// Values converted from Go maps with FromAny have sorted keys because Go maps
// are unordered; FromJSON keeps the document order.
package querystring
