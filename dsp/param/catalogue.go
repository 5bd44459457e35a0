package param

// Module identifiers in construction order: effects first, then generators.
var (
	EffectIDs    = []string{"reverb", "delay", "lpf", "hpf", "flanger", "phaser", "bitcrusher", "distortion", "eq", "tremolo", "ringmod", "deesser", "pitch"}
	GeneratorIDs = []string{"noise", "tone"}
)

// Global parameter ids.
const (
	Amount     = "amount"
	GlobalMix  = "global_mix"
	GenToChain = "gen_to_chain"
	GenMix     = "gen_mix"
)

// Choice lists used by the catalogue.
var (
	ReverbAlgorithms = []string{"Hall", "Plate"}
	DelayModes       = []string{"Digital", "PingPong", "Tape"}
	FilterSlopes     = []string{"6 dB/oct", "12 dB/oct", "24 dB/oct", "96 dB/oct"}
	DistortionModes  = []string{"Soft", "Hard", "Tube", "Fuzz"}
	TremoloWaves     = []string{"Sine", "Triangle", "Square", "Saw Up", "Saw Down"}
	ToneWaves        = []string{"Sine", "Triangle", "Saw", "Square"}
)

var defaultLayout = mustLayout(catalogue())

// DefaultLayout returns the engine's complete parameter layout.
func DefaultLayout() *Layout { return defaultLayout }

func mustLayout(specs []Spec) *Layout {
	l, err := NewLayout(specs...)
	if err != nil {
		panic(err)
	}
	return l
}

func module(id, name string, mix float64, specs ...Spec) []Spec {
	out := []Spec{
		Bool(id+"_enabled", name+" Enabled", false),
		Float(id+"_mix", name+" Mix", "", 0, 1, mix),
	}
	return append(out, specs...)
}

func generator(id, name string, specs ...Spec) []Spec {
	return append([]Spec{Bool(id+"_enabled", name+" Enabled", false)}, specs...)
}

//nolint:funlen
func catalogue() []Spec {
	var specs []Spec
	add := func(s ...Spec) { specs = append(specs, s...) }

	add(module("reverb", "Reverb", 0.35,
		Float("reverb_size", "Reverb Size", "", 0, 1, 0.5),
		Float("reverb_damping", "Reverb Damping", "", 0, 1, 0.5),
		Float("reverb_width", "Reverb Width", "", 0, 1, 1),
		Bool("reverb_freeze", "Reverb Freeze", false),
		Choice("reverb_algo", "Reverb Type", ReverbAlgorithms, 0),
		Float("reverb_predelay", "Reverb Pre-Delay", "ms", 0, 250, 0),
	)...)
	add(module("delay", "Delay", 0.35,
		Float("delay_time", "Delay Time", "ms", 1, 2000, 350).WithSkew(0.5),
		Float("delay_feedback", "Delay Feedback", "", 0, 0.95, 0.35),
		Choice("delay_mode", "Delay Mode", DelayModes, 0),
		Float("delay_tape_tone", "Delay Tape Tone", "", 0, 1, 0.6),
		Bool("delay_sync", "Delay Sync", false),
		Choice("delay_division", "Delay Division", divisionNames(), 2),
		Float("delay_hp", "Delay Feedback HP", "Hz", 20, 2000, 20).WithSkew(0.3),
		Float("delay_lp", "Delay Feedback LP", "Hz", 1000, 20000, 20000).WithSkew(0.3),
		Float("delay_wow_depth", "Delay Wow Depth", "", 0, 1, 0),
		Float("delay_wow_rate", "Delay Wow Rate", "Hz", 0.1, 5, 0.5),
	)...)
	add(module("lpf", "LPF", 1,
		Float("lpf_cutoff", "LPF Cutoff", "Hz", 20, 20000, 12000).WithSkew(0.3),
		Choice("lpf_slope", "LPF Slope", FilterSlopes, 2),
	)...)
	add(module("hpf", "HPF", 1,
		Float("hpf_cutoff", "HPF Cutoff", "Hz", 20, 20000, 30).WithSkew(0.3),
		Choice("hpf_slope", "HPF Slope", FilterSlopes, 1),
	)...)
	add(module("flanger", "Flanger", 1,
		Float("flanger_rate", "Flanger Rate", "Hz", 0.01, 5, 0.25).WithSkew(0.5),
		Float("flanger_depth", "Flanger Depth", "", 0, 1, 0.5),
		Float("flanger_feedback", "Flanger Feedback", "", 0, 0.95, 0.3),
	)...)
	add(module("phaser", "Phaser", 1,
		Float("phaser_rate", "Phaser Rate", "Hz", 0.01, 5, 0.3).WithSkew(0.5),
		Float("phaser_depth", "Phaser Depth", "", 0, 1, 0.6),
		Float("phaser_feedback", "Phaser Feedback", "", -0.95, 0.95, 0.2),
		Float("phaser_center", "Phaser Center", "Hz", 100, 2000, 400).WithSkew(0.5),
	)...)
	add(module("bitcrusher", "Bitcrusher", 1,
		Float("bitcrusher_bits", "Bit Depth", "bits", 2, 16, 8),
		Float("bitcrusher_downsample", "Downsample", "x", 1, 16, 1),
		Bool("bitcrusher_soft", "Bitcrusher Soft Clip", false),
	)...)
	add(module("distortion", "Distortion", 1,
		Float("distortion_drive", "Distortion Drive", "", 0, 1, 0.3),
		Choice("distortion_algo", "Distortion Algorithm", DistortionModes, 0),
		Bool("distortion_oversample", "Distortion Oversampling", true),
	)...)
	add(module("eq", "EQ", 1,
		Float("eq_low_freq", "EQ Low Freq", "Hz", 20, 500, 120).WithSkew(0.5),
		Float("eq_low_gain", "EQ Low Gain", "dB", -24, 24, 0),
		Float("eq_mid_freq", "EQ Mid Freq", "Hz", 100, 4000, 800).WithSkew(0.5),
		Float("eq_mid_gain", "EQ Mid Gain", "dB", -24, 24, 0),
		Float("eq_mid_q", "EQ Mid Q", "", 0.2, 10, 0.7),
		Float("eq_mid2_freq", "EQ Mid2 Freq", "Hz", 400, 8000, 2400).WithSkew(0.5),
		Float("eq_mid2_gain", "EQ Mid2 Gain", "dB", -24, 24, 0),
		Float("eq_mid2_q", "EQ Mid2 Q", "", 0.2, 10, 0.7),
		Float("eq_high_freq", "EQ High Freq", "Hz", 2000, 20000, 9000).WithSkew(0.5),
		Float("eq_high_gain", "EQ High Gain", "dB", -24, 24, 0),
	)...)
	add(module("tremolo", "Tremolo", 1,
		Float("tremolo_rate", "Tremolo Rate", "Hz", 0.1, 20, 4).WithSkew(0.5),
		Float("tremolo_depth", "Tremolo Depth", "", 0, 1, 0.7),
		Choice("tremolo_wave", "Tremolo Wave", TremoloWaves, 0),
		Bool("tremolo_sync", "Tremolo Sync", false),
		Choice("tremolo_division", "Tremolo Division", divisionNames(), 3),
	)...)
	add(module("ringmod", "Ring Mod", 1,
		Float("ringmod_freq", "Ring Mod Freq", "Hz", 10, 4000, 200).WithSkew(0.5),
		Float("ringmod_depth", "Ring Mod Depth", "", 0, 1, 0.5),
	)...)
	add(module("deesser", "De-Esser", 1,
		Float("deesser_freq", "De-Esser Freq", "Hz", 1000, 12000, 6000).WithSkew(0.5),
		Float("deesser_threshold", "De-Esser Threshold", "dB", -60, 0, -30),
	)...)
	add(module("pitch", "Pitch", 1,
		Float("pitch_semitones", "Pitch Shift", "st", -24, 24, 0),
	)...)

	add(generator("noise", "Noise",
		Float("noise_level", "Noise Level", "", 0, 1, 0.1),
		Float("noise_hp", "Noise HP", "Hz", 20, 5000, 200).WithSkew(0.3),
		Float("noise_lp", "Noise LP", "Hz", 200, 20000, 10000).WithSkew(0.3),
	)...)
	add(generator("tone", "Tone",
		Float("tone_level", "Tone Level", "", 0, 1, 0.1),
		Float("tone_freq", "Tone Freq", "Hz", 20, 20000, 440).WithSkew(0.3),
		Choice("tone_wave", "Tone Wave", ToneWaves, 0),
	)...)

	add(
		Bool(GenToChain, "Generators To Chain", true),
		Float(GenMix, "Generator Mix", "", 0, 1, 1),
		Float(Amount, "Amount", "", 0, 1, 0),
		Float(GlobalMix, "Global Mix", "", 0, 1, 1),
	)

	return specs
}
