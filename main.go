package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	specialistx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/agents/specialist"
	supervisorx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/agents/supervisor"
	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
	llmx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/llm"
	statex "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/state"
	storex "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/store"
	toolx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/tool"
	configx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/pkg/config"
	logx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/pkg/logger"
	openrouterx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/pkg/openrouter"
)

type AppConfig struct {
	SessionID string `envconfig:"SESSION_ID" split_words:"true" default:"local"`
}

func main() {
	// Registered before the first config load, which triggers flag.Parse.
	question := flag.String("q", "", "answer a single question and exit")

	logCfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*logCfg)

	appCfg := configx.MustNew[AppConfig]("")

	storeCfg := configx.MustNew[storex.Config]("STORE")
	musicStore, err := storex.Open(*storeCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open music store")
	}
	defer musicStore.Close()

	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	openRouterClient := openrouterx.NewClient(llmCfg.OpenRouterFor(contractx.AgentTypeSupervisor))
	if openRouterClient == nil {
		log.Fatal().Msg("failed to initialize openrouter client")
	}

	gateway, err := toolx.NewGateway(musicStore)
	if err != nil {
		log.Fatal().Err(err).Msg("build tool gateway")
	}

	ctx := context.Background()

	registry, err := specialistx.NewRegistry(ctx, *llmCfg, gateway)
	if err != nil {
		log.Fatal().Err(err).Msg("build specialist registry")
	}

	sup, err := supervisorx.New(newSessionStore(), registry)
	if err != nil {
		log.Fatal().Err(err).Msg("build supervisor")
	}

	if strings.TrimSpace(*question) != "" {
		reply, err := sup.HandleMessage(ctx, appCfg.SessionID, *question)
		if err != nil {
			log.Fatal().Err(err).Msg("handle message")
		}
		fmt.Println(reply)
		return
	}

	runREPL(ctx, sup, appCfg.SessionID)
}

// newSessionStore uses Upstash Redis when configured and falls back to the
// in-process store otherwise.
func newSessionStore() statex.Store {
	redisCfg, err := configx.New[statex.UpstashRedisConfig]("UPSTASH_REDIS")
	if err != nil {
		log.Info().Msg("using in-memory session store")
		return statex.NewMemoryStore()
	}

	store, err := statex.NewUpstashRedisStore(*redisCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build upstash session store")
	}
	log.Info().Msg("using upstash redis session store")
	return store
}

func runREPL(ctx context.Context, sup *supervisorx.Supervisor, sessionID string) {
	fmt.Println("Chinook music store assistant. Type 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			break
		}

		reply, err := sup.HandleMessage(ctx, sessionID, text)
		if err != nil {
			log.Error().Err(err).Msg("handle message")
			fmt.Println("Sorry, something went wrong. Please try again.")
			continue
		}
		fmt.Println(reply)
	}

	if err := scanner.Err(); err != nil {
		log.Fatal().Err(err).Msg("read input")
	}
}
