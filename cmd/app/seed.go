package main

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"testprep-backend/internal/apperr"
	"testprep-backend/internal/model"
	"testprep-backend/internal/repository"
	"testprep-backend/pkg/logging"
)

// seedDatabase loads the demo user and the sample question bank. It only
// runs against an empty questions table so restarts don't duplicate rows.
func seedDatabase(userRepo repository.UserRepository, questionRepo repository.QuestionRepository) error {
	count, err := questionRepo.CountAllQuestions()
	if err != nil {
		return err
	}
	if count > 0 {
		logging.Info("seed skipped: %d questions already present", count)
		return nil
	}

	if err := seedDemoUser(userRepo); err != nil {
		return err
	}

	for i := range sampleQuestions {
		if err := questionRepo.CreateQuestion(&sampleQuestions[i]); err != nil {
			return err
		}
	}
	logging.Info("seeded %d sample questions", len(sampleQuestions))
	return nil
}

func seedDemoUser(userRepo repository.UserRepository) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	err = userRepo.CreateUser(&model.User{
		Email:    "demo@testprep.com",
		Name:     "Demo User",
		Password: string(hash),
		Role:     model.RoleStudent,
	})
	if err != nil && !errors.Is(err, apperr.ErrConflict) {
		return err
	}
	return nil
}

var sampleQuestions = []model.Question{
	{
		TestType:   model.TestTypeSAT,
		Section:    "Reading",
		Difficulty: model.DifficultyMedium,
		Passage: "The industrial revolution brought about significant changes in the way people lived and worked. " +
			"Prior to this period, most goods were produced by hand in small workshops or at home. With the advent " +
			"of machinery and factories, production became faster and more efficient, leading to the growth of " +
			"cities as people moved from rural areas to find work in urban centers.",
		Question: "According to the passage, what was a major consequence of the industrial revolution?",
		Options: model.StringArray{
			"A decrease in production efficiency",
			"The growth of cities",
			"A return to handmade goods",
			"The decline of rural populations",
		},
		CorrectAnswer: "The growth of cities",
		Explanation: "The passage explicitly states that the industrial revolution led to \"the growth of cities " +
			"as people moved from rural areas to find work in urban centers.\"",
		Tags: model.StringArray{"history", "industrial-revolution", "social-change"},
	},
	{
		TestType:   model.TestTypeSAT,
		Section:    "Reading",
		Difficulty: model.DifficultyEasy,
		Passage: "Photosynthesis is the process by which plants convert light energy into chemical energy. During " +
			"this process, plants absorb carbon dioxide from the air and water from the soil, using sunlight to " +
			"transform these into glucose and oxygen.",
		Question: "What do plants produce during photosynthesis?",
		Options: model.StringArray{
			"Carbon dioxide and water",
			"Glucose and oxygen",
			"Sunlight and nutrients",
			"Chlorophyll and energy",
		},
		CorrectAnswer: "Glucose and oxygen",
		Explanation: "The passage clearly states that plants use sunlight to transform carbon dioxide and water " +
			"into \"glucose and oxygen.\"",
		Tags: model.StringArray{"science", "biology", "photosynthesis"},
	},
	{
		TestType:      model.TestTypeSAT,
		Section:       "Math",
		Difficulty:    model.DifficultyMedium,
		Question:      "If 3x + 7 = 22, what is the value of x?",
		Options:       model.StringArray{"3", "5", "7", "9"},
		CorrectAnswer: "5",
		Explanation:   "To solve: 3x + 7 = 22. Subtract 7 from both sides: 3x = 15. Divide both sides by 3: x = 5.",
		Tags:          model.StringArray{"algebra", "linear-equations"},
	},
	{
		TestType:      model.TestTypeSAT,
		Section:       "Math",
		Difficulty:    model.DifficultyHard,
		Question:      "A circle has a radius of 5. What is the area of the circle? (Use π ≈ 3.14)",
		Options:       model.StringArray{"15.7", "31.4", "78.5", "157"},
		CorrectAnswer: "78.5",
		Explanation:   "Area = πr². With r = 5: Area = π × 5² = π × 25 ≈ 3.14 × 25 = 78.5",
		Tags:          model.StringArray{"geometry", "circles", "area"},
	},
	{
		TestType:   model.TestTypeIELTS,
		Section:    "Reading",
		Difficulty: model.DifficultyMedium,
		Passage: "Climate change is one of the most pressing issues facing our planet today. Rising global " +
			"temperatures have led to melting ice caps, rising sea levels, and more frequent extreme weather " +
			"events. Scientists agree that human activities, particularly the burning of fossil fuels, are the " +
			"primary drivers of these changes.",
		Question: "What do scientists identify as the main cause of climate change?",
		Options: model.StringArray{
			"Natural weather patterns",
			"Solar activity",
			"Human activities and fossil fuels",
			"Ocean currents",
		},
		CorrectAnswer: "Human activities and fossil fuels",
		Explanation: "The passage states that \"Scientists agree that human activities, particularly the burning " +
			"of fossil fuels, are the primary drivers of these changes.\"",
		Tags: model.StringArray{"environment", "climate-change", "science"},
	},
	{
		TestType:   model.TestTypeIELTS,
		Section:    "Listening",
		Difficulty: model.DifficultyEasy,
		Question: "You hear: \"The library opens at 9 AM and closes at 6 PM on weekdays.\" What time does the " +
			"library close on weekdays?",
		Options:       model.StringArray{"5 PM", "6 PM", "7 PM", "8 PM"},
		CorrectAnswer: "6 PM",
		Explanation:   "The speaker clearly states the library closes at 6 PM on weekdays.",
		Tags:          model.StringArray{"time", "schedule", "daily-life"},
	},
}
