package banca

import (
	"errors"
	"testing"

	"github.com/ppghub/academico/internal/apperr"
)

func membro(funcao FuncaoMembro, tipo TipoMembro) MembroBanca {
	return MembroBanca{Funcao: funcao, Tipo: tipo}
}

func TestValidarComposicao(t *testing.T) {
	presidente := membro(FuncaoPresidente, MembroInterno)

	casos := []struct {
		nome    string
		tipo    TipoBanca
		membros []MembroBanca
		ok      bool
	}{
		{
			nome: "qualificacao minima",
			tipo: BancaQualificacao,
			membros: []MembroBanca{
				presidente,
				membro(FuncaoTitular, MembroInterno),
				membro(FuncaoTitular, MembroExterno),
			},
			ok: true,
		},
		{
			nome: "titulares insuficientes",
			tipo: BancaQualificacao,
			membros: []MembroBanca{
				presidente,
				membro(FuncaoTitular, MembroExterno),
			},
		},
		{
			nome: "suplente nao conta como titular",
			tipo: BancaQualificacao,
			membros: []MembroBanca{
				presidente,
				membro(FuncaoTitular, MembroExterno),
				membro(FuncaoSuplente, MembroInterno),
			},
		},
		{
			nome: "sem titular externo",
			tipo: BancaQualificacao,
			membros: []MembroBanca{
				presidente,
				membro(FuncaoTitular, MembroInterno),
				membro(FuncaoTitular, MembroInterno),
			},
		},
		{
			nome: "presidente externo",
			tipo: BancaQualificacao,
			membros: []MembroBanca{
				membro(FuncaoPresidente, MembroExterno),
				membro(FuncaoTitular, MembroInterno),
				membro(FuncaoTitular, MembroInterno),
			},
		},
		{
			nome: "dois presidentes",
			tipo: BancaQualificacao,
			membros: []MembroBanca{
				presidente,
				membro(FuncaoPresidente, MembroInterno),
				membro(FuncaoTitular, MembroExterno),
			},
		},
		{
			nome: "sem presidente",
			tipo: BancaQualificacao,
			membros: []MembroBanca{
				membro(FuncaoTitular, MembroInterno),
				membro(FuncaoTitular, MembroInterno),
				membro(FuncaoTitular, MembroExterno),
			},
		},
		{
			nome: "dissertacao exige cinco titulares",
			tipo: BancaDissertacao,
			membros: []MembroBanca{
				presidente,
				membro(FuncaoTitular, MembroInterno),
				membro(FuncaoTitular, MembroInterno),
				membro(FuncaoTitular, MembroExterno),
			},
		},
		{
			nome: "tese completa",
			tipo: BancaTese,
			membros: []MembroBanca{
				presidente,
				membro(FuncaoTitular, MembroInterno),
				membro(FuncaoTitular, MembroInterno),
				membro(FuncaoTitular, MembroInterno),
				membro(FuncaoTitular, MembroExterno),
				membro(FuncaoTitular, MembroExterno),
				membro(FuncaoTitular, MembroExterno),
				membro(FuncaoSuplente, MembroInterno),
			},
			ok: true,
		},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			err := ValidarComposicao(c.tipo, c.membros)
			if c.ok {
				if err != nil {
					t.Fatalf("composição válida rejeitada: %v", err)
				}
				return
			}
			if !errors.Is(err, apperr.ErrComposition) {
				t.Fatalf("esperado ErrComposition, veio %v", err)
			}
		})
	}
}

func TestNotaFinalMembros(t *testing.T) {
	nota := func(v float64) *float64 { return &v }

	t.Run("media dos titulares", func(t *testing.T) {
		membros := []MembroBanca{
			{Funcao: FuncaoPresidente, Tipo: MembroInterno, Nota: nota(9.0)},
			{Funcao: FuncaoTitular, Tipo: MembroExterno, Nota: nota(8.0)},
			{Funcao: FuncaoTitular, Tipo: MembroInterno, Nota: nota(8.5)},
		}
		got := NotaFinalMembros(membros)
		if got == nil || *got != 8.5 {
			t.Fatalf("nota final = %v, esperado 8.5", got)
		}
	})

	t.Run("suplente fora da media", func(t *testing.T) {
		membros := []MembroBanca{
			{Funcao: FuncaoPresidente, Tipo: MembroInterno, Nota: nota(10)},
			{Funcao: FuncaoSuplente, Tipo: MembroInterno, Nota: nota(0)},
		}
		got := NotaFinalMembros(membros)
		if got == nil || *got != 10 {
			t.Fatalf("nota final = %v, esperado 10", got)
		}
	})

	t.Run("titular sem nota nao entra na divisao", func(t *testing.T) {
		membros := []MembroBanca{
			{Funcao: FuncaoPresidente, Tipo: MembroInterno, Nota: nota(7.0)},
			{Funcao: FuncaoTitular, Tipo: MembroExterno},
		}
		got := NotaFinalMembros(membros)
		if got == nil || *got != 7.0 {
			t.Fatalf("nota final = %v, esperado 7.0", got)
		}
	})

	t.Run("sem notas", func(t *testing.T) {
		membros := []MembroBanca{
			{Funcao: FuncaoPresidente, Tipo: MembroInterno},
			{Funcao: FuncaoTitular, Tipo: MembroExterno},
		}
		if got := NotaFinalMembros(membros); got != nil {
			t.Fatalf("nota final = %v, esperado nil", got)
		}
	})
}
