package param_test

import (
	"fmt"

	"github.com/cwbudde/algo-rocket/dsp/param"
)

func ExampleStore() {
	store := param.NewStore(param.DefaultLayout())
	_ = store.Set("lpf_slope", 3)
	_ = store.Set("delay_feedback", 2)

	spec, _ := store.Layout().Lookup("lpf_slope")
	slope, _ := store.Get("lpf_slope")
	fb, _ := store.Get("delay_feedback")
	fmt.Println(spec.Format(slope))
	fmt.Println(fb)
	// Output:
	// 96 dB/oct
	// 0.95
}
