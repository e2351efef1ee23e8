// Package cards maps catalogue records to Card descriptors.
//
// Every list shares one contract: a card has a title, an optional cover
// image, one secondary metric and a single primary action. Keys derive from
// each record's natural identity so a surface can keep selection and
// diffing stable across reloads. Strategies never touch a surface; the
// terminal and HTML renderers both consume the same []Card.
package cards
