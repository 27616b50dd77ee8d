package config

var Presets = map[string]*Config{
	// The original performance: fixed length and tempo so the phrase lands.
	"fur_elise": {
		BoardType: "fur_elise", BoardHeight: DefaultBoardHeight,
		Generations: 80, TempoBPM: 126,
		StepDelayMS: DefaultStepDelayMS, Volume: DefaultVolume,
	},
	// One of each pattern family, open-ended playback.
	"showcase": {
		BoardType: "showcase", BoardHeight: DefaultBoardHeight,
		Generations: 0, StepDelayMS: DefaultStepDelayMS,
		Volume: DefaultVolume,
	},
	// Dense random board at a slow tempo, quiet.
	"ambient": {
		BoardType: "random", BoardHeight: 60,
		Generations: 0, TempoBPM: 60,
		StepDelayMS: DefaultStepDelayMS,
		AliveProbability: 0.3, Volume: 0.4,
	},
	// Short deterministic run, handy for comparing against saved output.
	"practice": {
		BoardType: "random", BoardHeight: 20,
		Generations: 40, StepDelayMS: 100,
		AliveProbability: DefaultAliveProbability,
		Seed: 42, Volume: DefaultVolume,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
