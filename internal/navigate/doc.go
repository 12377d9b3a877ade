// Package navigate resolves property-path expressions against a type graph
// and lists the properties reachable at the cursor.
//
// A Navigator walks the segments produced by package pathexpr from a root
// type, asking a shape.Provider for the structure of every type it reaches.
// Sequences expose the virtual accessors first, last and empty (and the call
// forms getFirst(), getLast(), get(i), first(), last()) regardless of the
// methods the host type actually declares.
//
// Navigation never fails: unknown members, terminal types and unsupported
// accessors produce an empty completion list, so editors can call it on
// every keystroke.
package navigate
