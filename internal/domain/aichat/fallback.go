package aichat

import "regexp"

type bucket struct {
	name  string
	match *regexp.Regexp
	reply string
}

// First match wins.
var buckets = []bucket{
	{
		name:  "greeting",
		match: regexp.MustCompile(`(?i)^\s*(hi|hello|hey|namaste|good (morning|afternoon|evening))( there)?[\s!.,]*$`),
		reply: "Hi! I'm the FitZone assistant. Ask me about memberships, classes, trainers, nutrition or workouts.",
	},
	{
		name:  "membership",
		match: regexp.MustCompile(`(?i)\b(member(ship)?s?|plans?|pric(e|es|ing)|cost|fees?|subscri(be|ption)|join(ing)?)\b`),
		reply: "We offer monthly, quarterly and annual memberships, and every plan includes access to group classes. Visit the membership page for current prices or ask at the front desk for a free trial session.",
	},
	{
		name:  "classes",
		match: regexp.MustCompile(`(?i)\b(class(es)?|schedule|timings?|yoga|zumba|hiit|spin(ning)?|pilates|cross ?fit|book(ing)?)\b`),
		reply: "Our weekly schedule includes yoga, HIIT, spinning, zumba and strength classes. Open the Classes page to see timings and book a spot; you can also set up a recurring weekly booking.",
	},
	{
		name:  "trainers",
		match: regexp.MustCompile(`(?i)\b(trainers?|coach(es|ing)?|instructors?|personal training|pt)\b`),
		reply: "Our certified trainers cover strength, cardio, yoga and rehab. Check the Trainers page for their specialisations, or book a personal training session at the front desk.",
	},
	{
		name:  "nutrition",
		match: regexp.MustCompile(`(?i)\b(diet|nutrition|meals?|food|protein|calories?|supplements?|eat(ing)?)\b`),
		reply: "Aim for balanced meals with enough protein, plenty of vegetables and water. Our store stocks protein and supplements, and our trainers can point you to a nutrition plan that fits your goals.",
	},
	{
		name:  "workout",
		match: regexp.MustCompile(`(?i)\b(workouts?|exercises?|routine|muscle|weight ?loss|lose weight|cardio|strength|abs|fat|gym)\b`),
		reply: "A good start is three to four sessions a week mixing strength training and cardio, with rest days in between. Warm up first and increase weights gradually. A trainer can build a routine for your goals.",
	},
}

const defaultReply = "I can help with memberships, class schedules, trainers, nutrition and workout tips. What would you like to know?"

// Fallback picks a canned reply by keyword. It never returns an empty
// string.
func Fallback(message string) string {
	for _, b := range buckets {
		if b.match.MatchString(message) {
			return b.reply
		}
	}
	return defaultReply
}

// Topic names the bucket message falls into, or "default".
func Topic(message string) string {
	for _, b := range buckets {
		if b.match.MatchString(message) {
			return b.name
		}
	}
	return "default"
}
