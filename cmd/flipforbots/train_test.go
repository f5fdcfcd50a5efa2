package main

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/flipforbots/internal/rl"
)

func TestCurriculumStages(t *testing.T) {
	stages, err := curriculumStages(10000)
	require.NoError(t, err)
	require.Len(t, stages, 3)

	assert.Equal(t, []string{"rand", "rand"}, stages[0].Kinds)
	assert.Equal(t, []string{"conservative", "conservative"}, stages[1].Kinds)
	assert.Equal(t, []string{"threshold", "threshold"}, stages[2].Kinds)

	assert.Equal(t, 2500, stages[0].Episodes)
	assert.Equal(t, 3500, stages[1].Episodes)
	assert.Equal(t, 4000, stages[2].Episodes)

	total := 0
	for _, s := range stages {
		total += s.Episodes
	}
	assert.Equal(t, 10000, total, "stages must consume the whole budget")
}

func TestCurriculumStagesTooFewEpisodes(t *testing.T) {
	_, err := curriculumStages(3)
	require.Error(t, err)
}

func TestStageTrainerCarriesDecayForward(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})

	cmd := &TrainCmd{
		Episodes:     20,
		EvalEvery:    0,
		EvalEpisodes: 0,
		Target:       50,
		Seed:         11,
	}
	table := rl.NewQTable()
	agentCfg := rl.DefaultConfig()

	stage := trainingStage{Kinds: []string{"threshold", "threshold"}, Episodes: 20}
	trainer, err := cmd.newStageTrainer(logger, table, stage, agentCfg, 11)
	require.NoError(t, err)
	require.NoError(t, trainer.Run(context.Background(), func(rl.Progress) {}))

	assert.Greater(t, table.Len(), 0, "training must populate the table")
	assert.Less(t, trainer.Agent().Epsilon(), agentCfg.Epsilon,
		"epsilon must have decayed for the next stage to inherit")
}
