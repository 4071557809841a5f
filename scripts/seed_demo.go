// Seeds a demo class, accounts and one competency test.
//
// Meant for a fresh install or a local environment, not for
// production data. Existing rows with the same usernames or slug make
// the script fail instead of duplicating.
//
// Usage: go run scripts/seed_demo.go

package main

import (
	"fmt"
	"log"
	"os"

	"school_exam_backend/internal/config"
	"school_exam_backend/internal/model"
	"school_exam_backend/internal/util"
	"school_exam_backend/pkg/database"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("Cannot read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Cannot parse config file: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Cannot hash password: %v", err)
	}

	class := &model.Class{Name: "X IPA 1"}
	if err := db.Create(class).Error; err != nil {
		log.Fatalf("Cannot create class: %v", err)
	}

	teacher := &model.User{
		Name:     "Guru Demo",
		Username: "guru.demo",
		Password: string(hash),
		Role:     model.Teacher,
	}
	if err := db.Create(teacher).Error; err != nil {
		log.Fatalf("Cannot create teacher: %v", err)
	}

	for i := 1; i <= 3; i++ {
		student := &model.User{
			Name:     fmt.Sprintf("Siswa Demo %d", i),
			Username: fmt.Sprintf("siswa.demo%d", i),
			Password: string(hash),
			Role:     model.Student,
			ClassID:  &class.ID,
		}
		if err := db.Create(student).Error; err != nil {
			log.Fatalf("Cannot create student: %v", err)
		}
	}

	title := "Pengetahuan Umum"
	competency := &model.Competency{
		Title:       title,
		Slug:        util.Slugify(title),
		Description: "Tes kompetensi contoh",
		Duration:    30,
		TeacherID:   teacher.ID,
	}
	if err := db.Create(competency).Error; err != nil {
		log.Fatalf("Cannot create competency: %v", err)
	}

	questions := []struct {
		prompt  string
		options []string
		correct int // index into options
	}{
		{"Ibu kota Indonesia adalah?", []string{"Jakarta", "Bandung", "Surabaya", "Medan"}, 0},
		{"2 + 2 = ?", []string{"3", "4", "5", "6"}, 1},
		{"Warna bendera Indonesia?", []string{"Merah Kuning", "Biru Putih", "Merah Putih", "Hijau Putih"}, 2},
	}

	labels := []string{"A", "B", "C", "D"}
	for i, q := range questions {
		question := &model.Question{
			CompetencyID: competency.ID,
			Prompt:       q.prompt,
			Order:        i + 1,
		}
		if err := db.Create(question).Error; err != nil {
			log.Fatalf("Cannot create question: %v", err)
		}

		for j, text := range q.options {
			option := &model.AnswerOption{
				QuestionID: question.ID,
				Label:      labels[j],
				Text:       text,
			}
			if err := db.Create(option).Error; err != nil {
				log.Fatalf("Cannot create option: %v", err)
			}
			if j == q.correct {
				key := &model.AnswerKey{QuestionID: question.ID, AnswerOptionID: option.ID}
				if err := db.Create(key).Error; err != nil {
					log.Fatalf("Cannot create answer key: %v", err)
				}
			}
		}
	}

	log.Printf("Seeded class %q, teacher guru.demo, 3 students and test %q (password: password)",
		class.Name, competency.Slug)
}
