package catalogo

import "testing"

func TestCreditos(t *testing.T) {
	casos := []struct {
		nome     string
		teoria   int
		pratica  int
		creditos int
	}{
		{"sessenta horas", 45, 15, 4},
		{"trinta horas", 30, 0, 2},
		{"horas quebradas descartam o resto", 40, 0, 2},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			d := Disciplina{CargaHorariaTeoria: c.teoria, CargaHorariaPratica: c.pratica}
			if got := d.Creditos(); got != c.creditos {
				t.Errorf("Creditos() = %d, esperado %d", got, c.creditos)
			}
		})
	}
}

func TestPodeTransicionarOferta(t *testing.T) {
	casos := []struct {
		de      StatusOferta
		para    StatusOferta
		permite bool
	}{
		{OfertaPlanejada, OfertaAberta, true},
		{OfertaPlanejada, OfertaCancelada, true},
		{OfertaPlanejada, OfertaEmCurso, false},
		{OfertaAberta, OfertaFechada, true},
		{OfertaAberta, OfertaConcluida, false},
		{OfertaFechada, OfertaAberta, true},
		{OfertaFechada, OfertaEmCurso, true},
		{OfertaEmCurso, OfertaConcluida, true},
		{OfertaEmCurso, OfertaAberta, false},
		{OfertaConcluida, OfertaCancelada, false},
		{OfertaCancelada, OfertaAberta, false},
	}

	for _, c := range casos {
		if got := c.de.PodeTransicionar(c.para); got != c.permite {
			t.Errorf("%s -> %s = %v, esperado %v", c.de, c.para, got, c.permite)
		}
	}
}

func TestVagasDisponiveis(t *testing.T) {
	o := Oferta{Vagas: 20, Ocupadas: 18, Status: OfertaAberta}
	if got := o.VagasDisponiveis(); got != 2 {
		t.Errorf("VagasDisponiveis() = %d", got)
	}
	if !o.AceitaMatriculas() {
		t.Errorf("oferta aberta com vagas deveria aceitar matrículas")
	}

	o.Ocupadas = 20
	if o.AceitaMatriculas() {
		t.Errorf("oferta lotada não deveria aceitar matrículas")
	}
}
