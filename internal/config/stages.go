package config

// StageConfig 单个咨询阶段的模型配置
type StageConfig struct {
	Model            string  `yaml:"model"`             // 模型名称
	MaxTokens        int     `yaml:"max_tokens"`        // 最大生成token数
	Temperature      float64 `yaml:"temperature"`       // 温度参数
	TopP             float64 `yaml:"top_p"`             // Top-p采样
	TopK             int     `yaml:"top_k"`             // Top-k采样
	RepeatPenalty    float64 `yaml:"repeat_penalty"`    // 重复惩罚
	FrequencyPenalty float64 `yaml:"frequency_penalty"` // 频率惩罚
	PresencePenalty  float64 `yaml:"presence_penalty"`  // 出现惩罚
}

// StagesConfig 五个咨询阶段的模型配置
type StagesConfig struct {
	Empathy StageConfig `yaml:"empathy"` // 共情阶段
	MI      StageConfig `yaml:"mi"`      // 动机强化阶段
	CBT1    StageConfig `yaml:"cbt1"`    // 自动思维探索阶段
	CBT2    StageConfig `yaml:"cbt2"`    // 认知重构阶段
	CBT3    StageConfig `yaml:"cbt3"`    // 行动计划阶段
}

// applyDefaults 填充各阶段的默认生成参数
func (s *StagesConfig) applyDefaults() {
	s.Empathy.applyDefaults(64, 0.6, 0.9, 0, 1.1, 0, 0)
	s.MI.applyDefaults(128, 0.7, 0.85, 40, 1.1, 0.7, 0.5)
	s.CBT1.applyDefaults(128, 0.75, 0.9, 0, 0, 0.8, 1.0)
	s.CBT2.applyDefaults(128, 0.7, 0.9, 0, 1.1, 0.8, 1.0)
	s.CBT3.applyDefaults(64, 0.65, 0.9, 0, 1.1, 0.8, 1.0)
}

// applyDefaults 填充未设置的生成参数
func (c *StageConfig) applyDefaults(maxTokens int, temperature, topP float64, topK int, repeatPenalty, frequencyPenalty, presencePenalty float64) {
	if c.MaxTokens == 0 {
		c.MaxTokens = maxTokens
	}
	if c.Temperature == 0 {
		c.Temperature = temperature
	}
	if c.TopP == 0 {
		c.TopP = topP
	}
	if c.TopK == 0 {
		c.TopK = topK
	}
	if c.RepeatPenalty == 0 {
		c.RepeatPenalty = repeatPenalty
	}
	if c.FrequencyPenalty == 0 {
		c.FrequencyPenalty = frequencyPenalty
	}
	if c.PresencePenalty == 0 {
		c.PresencePenalty = presencePenalty
	}
}

// Validate 验证各阶段配置
func (s *StagesConfig) Validate() error {
	for _, c := range []StageConfig{s.Empathy, s.MI, s.CBT1, s.CBT2, s.CBT3} {
		if c.Model == "" {
			return ErrEmptyStageModel
		}
	}
	return nil
}
