package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"twinheart/internal/domain"
	"twinheart/internal/engine"
	"twinheart/internal/scheduler"
)

// REPL offline contra el engine: sin base de datos ni servidor, util para
// probar clasificacion y respuestas a mano.
func main() {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("===== TwinHeart Chat =====")
	fmt.Print("Tu nombre: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		name = "friend"
	}

	personality := choosePersonality(reader)

	eng := engine.NewEngine(nil)
	memory := domain.NewUserMemory("cli")
	turns := 0

	sched := scheduler.NewScheduler(scheduler.SystemClock(), scheduler.NewMemoryMarkerStore(), nil)
	if err := sched.Initialize(domain.DefaultPreferences()); err != nil {
		fmt.Printf("error inicializando recordatorios: %v\n", err)
		return
	}

	hour := time.Now().Hour()
	fmt.Printf("\n%s\n", engine.ProactiveMessage(personality, hour, name))
	fmt.Println("(escribe 'salir' para terminar, '/insights' para ver lo aprendido, '/reminders' para hoy)")

	for {
		fmt.Print("Tu > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.EqualFold(text, "salir") || strings.EqualFold(text, "exit") {
			fmt.Println("Hasta pronto!")
			return
		}
		if text == "/insights" {
			insights := engine.Insights(memory)
			if len(insights) == 0 {
				fmt.Println("Todavia no aprendi nada de ti.")
			}
			for _, insight := range insights {
				fmt.Printf("- %s\n", insight)
			}
			continue
		}

		if text == "/reminders" {
			for _, r := range sched.TodaysReminders() {
				status := " "
				if r.Completed {
					status = "x"
				}
				fmt.Printf("[%s] %s %s %s\n", status, r.Time, r.Icon, r.Message)
			}
			continue
		}

		if due, err := sched.CheckDueReminders(); err == nil {
			for _, r := range due {
				fmt.Printf("(recordatorio) %s %s\n", r.Icon, r.Message)
			}
		}

		analysis := engine.Classify(text)
		risk := engine.AssessRisk(text)
		if risk.RequiresIntervention {
			fmt.Printf("\n!! %s\n", risk.Message)
			for _, resource := range risk.Resources {
				fmt.Printf("   %s\n", resource)
			}
			fmt.Println()
		}

		reply := eng.GenerateResponse(text, analysis, domain.ConversationContext{
			RecentMood:         string(memory.EmotionalPatterns.RecentMood),
			Personality:        personality,
			TimeOfDay:          time.Now().Hour(),
			UserName:           name,
			ConversationLength: turns,
		}, memory)
		turns++

		fmt.Printf("Companion > %s\n", reply)
		fmt.Printf("  [sentiment=%s intent=%s topics=%v]\n", analysis.Sentiment, analysis.Intent, analysis.Topics)
	}
}

func choosePersonality(reader *bufio.Reader) domain.Personality {
	options := []domain.Personality{
		domain.PersonalityCaring,
		domain.PersonalityPlayful,
		domain.PersonalityWise,
		domain.PersonalityEnergetic,
		domain.PersonalityCalm,
	}

	fmt.Println("Personalidades disponibles:")
	for i, p := range options {
		fmt.Printf("[%d] %s\n", i+1, p)
	}
	fmt.Print("Selecciona una personalidad (default caring): ")
	choice, _ := reader.ReadString('\n')
	choice = strings.TrimSpace(choice)

	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(options) {
		return domain.PersonalityCaring
	}
	return options[idx-1]
}
