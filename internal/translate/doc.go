// Package translate turns a parsed CONSTRUCT query into a rule.
//
// Translation is a pure function: the naming table that assigns Unbound
// identifiers is built fresh for each call and discarded with it, so
// independent queries can be translated concurrently with no
// synchronization.
//
// Two stages cooperate over the shared naming table:
//
//   - the term resolver maps each syntactic term to a rule term, interning
//     variables under their own name and WHERE blank nodes under a
//     deterministic derived identifier;
//   - the pattern emitter walks the WHERE pattern and the CONSTRUCT
//     template in source order, producing if_all and then, and runs the
//     safety check that every identifier implied by then was matched in
//     if_all.
//
// Any failure aborts the whole translation; there are no partial rules.
package translate
