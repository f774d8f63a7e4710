package catalog

// Default returns the five-question Asthma Control Test catalog.
func Default() *Catalog {
	c, err := New(actQuestions())
	if err != nil {
		panic(err)
	}
	return c
}

func actQuestions() []Question {
	return []Question{
		{
			ID:   "q1",
			Text: "在过去4周内，在工作、学习或家中，有多少时间哮喘妨碍您进行日常活动？",
			Options: fivePoint(
				"所有时间",
				"大多数时间",
				"有些时间",
				"很少时间",
				"没有",
			),
		},
		{
			ID:   "q2",
			Text: "在过去4周内，您有多少次呼吸困难？",
			Options: fivePoint(
				"每天不止1次",
				"每天1次",
				"每周3-6次",
				"每周1-2次",
				"完全没有",
			),
		},
		{
			ID:   "q3",
			Text: "在过去4周内，因为哮喘症状（喘息、咳嗽、呼吸困难、胸闷或疼痛），您有多少次在夜间醒来或早上比平时早醒？",
			Options: fivePoint(
				"每周4晚或更多",
				"每周2-3晚",
				"每周1次",
				"1-2次",
				"没有",
			),
		},
		{
			ID:   "q4",
			Text: "在过去4周内，您有多少次用急救药物治疗（如沙丁胺醇）？",
			Options: fivePoint(
				"每天3次以上",
				"每天1-2次",
				"每周2-3次",
				"每周1次或更少",
				"没有",
			),
		},
		{
			ID:   "q5",
			Text: "您如何评估过去4周内，您的哮喘控制情况？",
			Options: fivePoint(
				"没有控制",
				"控制很差",
				"有所控制",
				"控制很好",
				"完全控制",
			),
		},
	}
}

// fivePoint assigns codes A..E scoring 1..5 in order.
func fivePoint(texts ...string) []Option {
	codes := []string{"A", "B", "C", "D", "E"}
	options := make([]Option, 0, len(texts))
	for i, text := range texts {
		options = append(options, Option{Code: codes[i], Text: text, Score: i + 1})
	}
	return options
}
