package app

import "trivia-quiz/internal/domain"

func sampleQuestion(text, a, b, c, d, correct, category, difficulty string) domain.QuestionRecord {
	return domain.QuestionRecord{
		Text:          text,
		OptionA:       a,
		OptionB:       b,
		OptionC:       c,
		OptionD:       d,
		CorrectLetter: correct,
		Category:      category,
		Difficulty:    difficulty,
	}
}

// SampleQuestions is the starter set inserted into an empty question table.
func SampleQuestions() []domain.QuestionRecord {
	return []domain.QuestionRecord{
		sampleQuestion("What is the capital of France?", "London", "Berlin", "Paris", "Madrid", "C", "Geography", "Easy"),
		sampleQuestion("Which planet is known as the Red Planet?", "Venus", "Mars", "Jupiter", "Saturn", "B", "Science", "Easy"),
		sampleQuestion("What is 2 + 2?", "3", "4", "5", "6", "B", "Math", "Easy"),
		sampleQuestion("Who wrote 'Romeo and Juliet'?", "Charles Dickens", "William Shakespeare", "Jane Austen", "Mark Twain", "B", "Literature", "Medium"),
		sampleQuestion("What is the largest mammal in the world?", "Elephant", "Blue Whale", "Giraffe", "Hippopotamus", "B", "Science", "Medium"),
		sampleQuestion("In which year did World War II end?", "1944", "1945", "1946", "1947", "B", "History", "Medium"),
		sampleQuestion("What is the chemical symbol for gold?", "Go", "Gd", "Au", "Ag", "C", "Science", "Hard"),
		sampleQuestion("Which programming language is known for its use in web development?", "C++", "Java", "JavaScript", "Assembly", "C", "Technology", "Medium"),
		sampleQuestion("What is the square root of 144?", "11", "12", "13", "14", "B", "Math", "Easy"),
		sampleQuestion("Who painted the Mona Lisa?", "Vincent van Gogh", "Pablo Picasso", "Leonardo da Vinci", "Michelangelo", "C", "Art", "Medium"),
	}
}
