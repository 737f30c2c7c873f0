package docente

import "testing"

func TestPodeOrientar(t *testing.T) {
	casos := []struct {
		nome      string
		status    StatusDocente
		mestrado  int
		doutorado int
		esperado  bool
	}{
		{"ativo sem orientacoes", StatusAtivo, 0, 0, true},
		{"ativo abaixo do limite", StatusAtivo, 4, 3, true},
		{"ativo no limite", StatusAtivo, 5, 3, false},
		{"afastado", StatusAfastado, 0, 0, false},
		{"aposentado", StatusAposentado, 1, 0, false},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			d := Docente{
				Status:                        c.status,
				OrientacoesMestradoAndamento:  c.mestrado,
				OrientacoesDoutoradoAndamento: c.doutorado,
			}
			if got := d.PodeOrientar(); got != c.esperado {
				t.Errorf("PodeOrientar() = %v, esperado %v", got, c.esperado)
			}
		})
	}
}

func TestTotaisOrientacoes(t *testing.T) {
	d := Docente{
		OrientacoesMestradoAndamento:   2,
		OrientacoesDoutoradoAndamento:  1,
		OrientacoesMestradoConcluidas:  7,
		OrientacoesDoutoradoConcluidas: 4,
	}
	if got := d.TotalOrientacoesAndamento(); got != 3 {
		t.Errorf("andamento = %d", got)
	}
	if got := d.TotalOrientacoesConcluidas(); got != 11 {
		t.Errorf("concluídas = %d", got)
	}
}
