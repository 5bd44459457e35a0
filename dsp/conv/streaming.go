package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Streaming convolves a stream with a fixed kernel block by block using
// FFT overlap-add. All buffers are allocated by the constructor.
type Streaming struct {
	kernelFFT []complex128

	kernelLen    int
	maxBlockSize int
	fftSize      int

	plan *algofft.Plan[complex128]

	spectrum []complex128
	tail     []float64 // kernelLen-1 samples carried into the next blocks
}

// NewStreaming creates a streaming convolver for blocks of up to maxBlockSize samples.
func NewStreaming(kernel []float64, maxBlockSize int) (*Streaming, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if maxBlockSize <= 0 {
		return nil, fmt.Errorf("%w: must be positive, got %d", ErrInvalidBlockSize, maxBlockSize)
	}

	fftSize := nextPowerOf2(maxBlockSize + len(kernel) - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	s := &Streaming{
		kernelFFT:    make([]complex128, fftSize),
		kernelLen:    len(kernel),
		maxBlockSize: maxBlockSize,
		fftSize:      fftSize,
		plan:         plan,
		spectrum:     make([]complex128, fftSize),
		tail:         make([]float64, len(kernel)-1),
	}

	padded := make([]complex128, fftSize)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}

	if err := plan.Forward(s.kernelFFT, padded); err != nil {
		return nil, fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
	}

	return s, nil
}

// ProcessBlockTo convolves input and writes len(input) samples to output.
// len(input) must not exceed the configured maximum and output must be at
// least as long as input. input and output may alias.
func (s *Streaming) ProcessBlockTo(output, input []float64) error {
	n := len(input)
	if n == 0 {
		return nil
	}
	if n > s.maxBlockSize {
		return fmt.Errorf("%w: block of %d exceeds maximum %d", ErrInvalidBlockSize, n, s.maxBlockSize)
	}
	if len(output) < n {
		return fmt.Errorf("%w: output %d shorter than input %d", ErrLengthMismatch, len(output), n)
	}

	for i, x := range input {
		s.spectrum[i] = complex(x, 0)
	}
	for i := n; i < s.fftSize; i++ {
		s.spectrum[i] = 0
	}

	if err := s.plan.Forward(s.spectrum, s.spectrum); err != nil {
		return fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	for i := range s.spectrum {
		s.spectrum[i] *= s.kernelFFT[i]
	}

	if err := s.plan.Inverse(s.spectrum, s.spectrum); err != nil {
		return fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	// Result of this block spans n+kernelLen-1 samples: the first n go out
	// together with the pending tail, the rest is merged into the tail.
	tailLen := len(s.tail)
	for i := range n {
		y := real(s.spectrum[i])
		if i < tailLen {
			y += s.tail[i]
		}
		output[i] = y
	}

	for j := range tailLen {
		var carried float64
		if j+n < tailLen {
			carried = s.tail[j+n]
		}
		s.tail[j] = carried + real(s.spectrum[n+j])
	}

	return nil
}

// Reset clears the overlap tail.
func (s *Streaming) Reset() {
	clear(s.tail)
}

// KernelLen returns the kernel length.
func (s *Streaming) KernelLen() int { return s.kernelLen }

// MaxBlockSize returns the largest accepted block.
func (s *Streaming) MaxBlockSize() int { return s.maxBlockSize }

// FFTSize returns the FFT size.
func (s *Streaming) FFTSize() int { return s.fftSize }
