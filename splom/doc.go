// Package splom lays out a scatterplot matrix.
//
// Build turns a dataset and a Config into a Matrix: a plain render tree of
// axes, cells, points, texts and regression segments in pixel coordinates.
// The tree carries no drawing code; render/svg and render/vgdraw consume it.
//
// For N variables the matrix has N*N cells. Cell (I, J) plots variable I on
// the x axis against variable J on the y axis and sits at column N-I-1 and
// row J. Off-diagonal cells can remove Mahalanobis outliers and annotate the
// Pearson (γ) and Spearman (ρ) coefficients and the least-squares line.
// Diagonal cells show the variable name and either its descriptive
// statistics or a white scatter of the variable against itself.
package splom
