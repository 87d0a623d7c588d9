// Package matrix: linear-algebra kernels over Dense operands.
// All kernels perform strict fail-fast validation, allocate fresh results,
// and never mutate operands. Loop orders are fixed for determinism.
package matrix

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Internal helper for Add/Sub to share validation and the flat fast path.
func addSub(a, b *Dense, sign float64) (*Dense, error) {
	// 1. Validate operands
	if a == nil || b == nil {
		return nil, ErrNilMatrix
	}
	if a.r != b.r || a.c != b.c {
		return nil, ErrDimensionMismatch
	}

	// 2. Single flat loop over backing storage
	out := &Dense{r: a.r, c: a.c, data: make([]float64, len(a.data))}
	for i := range a.data {
		out.data[i] = a.data[i] + sign*b.data[i]
	}

	return out, nil
}

// Add returns a + b for same-shape operands.
// Complexity: O(r*c).
func Add(a, b *Dense) (*Dense, error) { return addSub(a, b, 1) }

// Sub returns a − b for same-shape operands.
// Complexity: O(r*c).
func Sub(a, b *Dense) (*Dense, error) { return addSub(a, b, -1) }

// Mul returns the matrix product a·b, requiring a.Cols == b.Rows.
// Loop order i→k→j keeps the inner walk contiguous in both operands.
// Complexity: O(a.r · a.c · b.c).
func Mul(a, b *Dense) (*Dense, error) {
	// 1. Validate operands
	if a == nil || b == nil {
		return nil, ErrNilMatrix
	}
	if a.c != b.r {
		return nil, ErrDimensionMismatch
	}

	// 2. Accumulate with a hoisted pivot scalar
	out := &Dense{r: a.r, c: b.c, data: make([]float64, a.r*b.c)}
	var i, j, k int
	var aik float64
	for i = 0; i < a.r; i++ {
		for k = 0; k < a.c; k++ {
			aik = a.data[i*a.c+k]
			if aik == 0 {
				continue
			}
			for j = 0; j < b.c; j++ {
				out.data[i*b.c+j] += aik * b.data[k*b.c+j]
			}
		}
	}

	return out, nil
}

// MulVec returns the matrix-vector product a·x as a fresh slice.
// Complexity: O(r*c).
func MulVec(a *Dense, x []float64) ([]float64, error) {
	// 1. Validate operands
	if a == nil {
		return nil, ErrNilMatrix
	}
	if a.c != len(x) {
		return nil, ErrDimensionMismatch
	}

	// 2. Row-major accumulation
	out := make([]float64, a.r)
	var i, j int
	var sum float64
	for i = 0; i < a.r; i++ {
		sum = 0
		for j = 0; j < a.c; j++ {
			sum += a.data[i*a.c+j] * x[j]
		}
		out[i] = sum
	}

	return out, nil
}

// TransposeMulVec returns aᵀ·x without materializing the transpose.
// Complexity: O(r*c).
func TransposeMulVec(a *Dense, x []float64) ([]float64, error) {
	// 1. Validate operands
	if a == nil {
		return nil, ErrNilMatrix
	}
	if a.r != len(x) {
		return nil, ErrDimensionMismatch
	}

	// 2. Column accumulation in row-major sweeps
	out := make([]float64, a.c)
	var i, j int
	var xi float64
	for i = 0; i < a.r; i++ {
		xi = x[i]
		if xi == 0 {
			continue
		}
		for j = 0; j < a.c; j++ {
			out[j] += a.data[i*a.c+j] * xi
		}
	}

	return out, nil
}

// Transpose returns aᵀ as a fresh Dense.
// Complexity: O(r*c).
func Transpose(a *Dense) (*Dense, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}

	out := &Dense{r: a.c, c: a.r, data: make([]float64, len(a.data))}
	var i, j int
	for i = 0; i < a.r; i++ {
		for j = 0; j < a.c; j++ {
			out.data[j*a.r+i] = a.data[i*a.c+j]
		}
	}

	return out, nil
}

// Scale returns s·a as a fresh Dense.
// Complexity: O(r*c).
func Scale(a *Dense, s float64) (*Dense, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}

	out := &Dense{r: a.r, c: a.c, data: make([]float64, len(a.data))}
	for i := range a.data {
		out.data[i] = s * a.data[i]
	}

	return out, nil
}

// Dot returns the inner product of two equal-length vectors.
// Complexity: O(n).
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}

	return sum, nil
}

// AddVec returns a + b for equal-length vectors.
// Complexity: O(n).
func AddVec(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, ErrDimensionMismatch
	}

	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}

	return out, nil
}

// QuadraticForm returns xᵀ·M·x, the energy form the acceptance oracle uses.
// Complexity: O(r*c).
func QuadraticForm(m *Dense, x []float64) (float64, error) {
	mx, err := MulVec(m, x)
	if err != nil {
		return 0, err
	}

	return Dot(x, mx)
}
