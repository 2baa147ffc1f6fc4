package solver

// CheckSolution is checkSolution for the external tests.
var CheckSolution = checkSolution
