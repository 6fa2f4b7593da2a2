// Package snapshot converts documents to and from their persisted form.
//
// A snapshot is versioned JSON:
//
//	{
//	  "version": 1,
//	  "blocks": [
//	    {"key": "a1b2c3d4", "type": "header-one", "text": "Title", "styles": []},
//	    {"key": "e5f6a7b8", "type": "normal", "text": "hello", "styles": [
//	      {"start": 0, "end": 5, "tag": "BOLD"}
//	    ]}
//	  ]
//	}
//
// Offsets count Unicode code points. "version" and "key" may be omitted on
// input; "type" accepts "unstyled" as an alias of "normal". Every other
// field is required and unknown fields are rejected.
//
// Any structural or semantic problem is reported as a *MalformedError whose
// Path names the offending element, such as "blocks[0].styles[1].tag". A
// failed decode never yields a partial document.
//
// The package also reads and writes the raw content format of draft-js
// (see MarshalRaw and UnmarshalRaw), whose offsets count UTF-16 code units.
package snapshot
