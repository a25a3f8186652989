// Package match ranks composite names by how close they are to a name that
// could not be found, for "did you mean" hints.
//
// Names are compared rune by rune under Unicode case folding:
//   - Distance: Levenshtein edit distance between two names
//   - Similarity: distance scaled to [0, 1] by the longer name's rune count
//   - Suggest: the closest candidates above DefaultThreshold
package match
