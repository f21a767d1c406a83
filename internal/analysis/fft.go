package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of data, whose length must
// be a power of two. Callers pad with zeros; see Autocorrelation.
func FFT(data []complex128) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		copy(result, data)
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// IFFT computes the inverse transform via conjugation.
func IFFT(data []complex128) []complex128 {
	n := len(data)
	conj := make([]complex128, n)
	for i, v := range data {
		conj[i] = cmplx.Conj(v)
	}
	out := FFT(conj)
	for i, v := range out {
		out[i] = cmplx.Conj(v) / complex(float64(n), 0)
	}
	return out
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
