package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/loam"

	flowloam "github.com/aretw0/flowguard/pkg/adapters/loam"
	"github.com/aretw0/flowguard/pkg/domain"
	"github.com/aretw0/flowguard/pkg/dsl"
)

func main() {
	targetDir := "examples/flows"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	// Ensure dir exists
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		panic(err)
	}

	fmt.Printf("Generating sample flows in: %s\n", targetDir)

	// No versioning: plain files that `flowguard validate --source loam` can read back.
	repo, err := loam.Init(targetDir, loam.WithVersioning(false))
	if err != nil {
		panic(err)
	}
	ctx := context.TODO()

	for _, flow := range []*domain.Flow{welcome(), broken()} {
		check(flowloam.Export(ctx, repo, flow, flowloam.DefaultRootFlow))
		fmt.Printf("  %s (%d nodes)\n", flow.ID, len(flow.Nodes))
	}

	fmt.Println("Done. Verify contents in", targetDir)
}

// welcome is clean: `flowguard validate` must report no issue.
func welcome() *domain.Flow {
	b := dsl.New("welcome").Name("Welcome")
	b.Add("start").Start().Go("ask_name")
	b.Add("ask_name").Question("Qual é o seu nome?").SaveTo("nome").Go("greet")
	b.Add("greet").Message("Prazer, {{nome}}!").Go("wait")
	b.Add("wait").Delay(10, "minutes").Go("notify")
	b.Add("notify").Webhook("https://hooks.example.com/welcome")
	return b.Build()
}

// broken fails on purpose: `flowguard validate` must exit with status 1.
func broken() *domain.Flow {
	b := dsl.New("broken").Name("Broken")
	b.Add("start").Start().Go("hello")
	b.Add("hello").Message("Olá {{cliente}}").Go("empty")
	b.Add("empty").Message("").Go("wait")
	b.Add("wait").Delay(-5, "minutes").Go("hook")
	b.Add("hook").Webhook("http://localhost:8080/hook").Go("start", "ghost")
	b.Add("lonely").Message("Ninguém me chama")
	return b.Build()
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
