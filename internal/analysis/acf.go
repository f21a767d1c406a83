// Package analysis provides chain-level diagnostics computed after a
// run: autocorrelation, integrated autocorrelation time and effective
// sample size.
package analysis

// Autocorrelation returns the normalized autocorrelation function of a
// chain, computed via FFT on a zero-padded copy. Lag 0 is 1 by
// construction.
func Autocorrelation(series []float64) []float64 {
	n := len(series)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	// Pad to 2n rounded up to a power of two to avoid circular wrap.
	m := nextPow2(2 * n)
	padded := make([]complex128, m)
	for i, v := range series {
		padded[i] = complex(v-mean, 0)
	}

	freq := FFT(padded)
	for i, v := range freq {
		re := real(v)
		im := imag(v)
		freq[i] = complex(re*re+im*im, 0)
	}
	acov := IFFT(freq)

	acf := make([]float64, n)
	c0 := real(acov[0])
	if c0 == 0 {
		acf[0] = 1
		return acf
	}
	for i := range acf {
		acf[i] = real(acov[i]) / c0
	}
	return acf
}

// IntegratedAutocorrTime estimates the integrated autocorrelation time
// using Geyer's initial positive sequence: sum consecutive lag pairs
// while their sum stays positive.
func IntegratedAutocorrTime(series []float64) float64 {
	acf := Autocorrelation(series)
	if len(acf) == 0 {
		return 1
	}

	tau := 1.0
	for k := 1; k+1 < len(acf); k += 2 {
		pair := acf[k] + acf[k+1]
		if pair <= 0 {
			break
		}
		tau += 2 * pair
	}
	if tau < 1 {
		tau = 1
	}
	return tau
}

// ESS is the effective sample size: chain length divided by the
// integrated autocorrelation time.
func ESS(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return float64(len(series)) / IntegratedAutocorrTime(series)
}

// Mean returns the empirical mean of the chain.
func Mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

// Variance returns the empirical sample variance of the chain.
func Variance(series []float64) float64 {
	n := len(series)
	if n < 2 {
		return 0
	}
	mean := Mean(series)
	sum := 0.0
	for _, v := range series {
		d := v - mean
		sum += d * d
	}
	return sum / float64(n-1)
}
