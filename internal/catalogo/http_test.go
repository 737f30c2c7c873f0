package catalogo

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func novoServidor(repo *stubRepo) *httptest.Server {
	h := NewHandler(NewService(repo, nil))
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return httptest.NewServer(r)
}

func TestHandleCriarDisciplina(t *testing.T) {
	repo := newStubRepo()
	srv := novoServidor(repo)
	defer srv.Close()

	payload, _ := json.Marshal(map[string]any{
		"programa_id":          uuid.New(),
		"codigo":               "PPGCC7101",
		"nome":                 "Métodos de Pesquisa",
		"carga_horaria_teoria": 45,
		"tipo":                 "Obrigatória",
	})

	resp, err := http.Post(srv.URL+"/disciplinas", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("requisição falhou: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		Data Disciplina `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decodificando resposta: %v", err)
	}
	if body.Data.Status != DisciplinaAtiva {
		t.Errorf("status da disciplina = %s", body.Data.Status)
	}
	if body.Data.Codigo != "PPGCC7101" {
		t.Errorf("código = %s", body.Data.Codigo)
	}
}

func TestHandleCriarDisciplinaInvalida(t *testing.T) {
	repo := newStubRepo()
	srv := novoServidor(repo)
	defer srv.Close()

	// sem código nem nome
	payload := []byte(`{"programa_id":"` + uuid.NewString() + `","tipo":"Eletiva"}`)
	resp, err := http.Post(srv.URL+"/disciplinas", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("requisição falhou: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestHandleTransicaoOferta(t *testing.T) {
	repo := newStubRepo()
	srv := novoServidor(repo)
	defer srv.Close()

	o := repo.seedOferta(Oferta{Periodo: "2026.1", Vagas: 10, Status: OfertaPlanejada})

	resp, err := http.Post(srv.URL+"/ofertas/"+o.ID.String()+"/abrir", "application/json", nil)
	if err != nil {
		t.Fatalf("requisição falhou: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		Data Oferta `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decodificando resposta: %v", err)
	}
	if body.Data.Status != OfertaAberta {
		t.Errorf("status da oferta = %s", body.Data.Status)
	}

	// Aberta não conclui direto
	resp2, err := http.Post(srv.URL+"/ofertas/"+o.ID.String()+"/concluir", "application/json", nil)
	if err != nil {
		t.Fatalf("requisição falhou: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, esperado 422", resp2.StatusCode)
	}
}
