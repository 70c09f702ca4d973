package bodies

var registry = []Body{
	{
		Name: "Sun", Radius: 15, SpinSpeed: 0.004, Color: "#ffcc33", Star: true,
		DiameterKm: 1392700, Mass: 1989000, Gravity: 274,
	},
	{
		Name: "Mercury", Radius: 3.2, OrbitSpeed: 0.004, SpinSpeed: 0.004, Distance: 28,
		DiameterKm: 4879, Mass: 0.33, Gravity: 3.7, Color: "#9e9e9e",
		Orbit: Orbit{A: 57.91, E: 0.2056, Period: 88},
		Layers: []string{
			"Crust: Mercury's crust is made of silicate minerals, forming a thin rocky outer layer.",
			"Mantle: Beneath the crust, Mercury has a silicate mantle, which is much thinner compared to Earth's mantle.",
			"Core: Mercury's core is massive for its size, consisting primarily of iron and nickel, making up about 85% of the planet's radius.",
		},
		Facts: []string{
			"Mercury is the smallest planet in the solar system and the closest to the Sun, yet it has ice in permanently shadowed craters near its poles.",
			"It has no atmosphere to retain heat, so temperatures can reach as high as 430°C (800°F) during the day and plummet to -180°C (-290°F) at night.",
			"A day on Mercury (one full rotation) takes 59 Earth days, but it takes just 88 Earth days to complete one orbit around the Sun.",
		},
	},
	{
		Name: "Venus", Radius: 5.8, OrbitSpeed: 0.015, SpinSpeed: 0.002, Distance: 44,
		DiameterKm: 12104, Mass: 4.87, Gravity: 8.87, Color: "#e3bb76",
		Orbit: Orbit{A: 108.21, E: 0.0067, Period: 224.7},
		Layers: []string{
			"Crust: Venus has a basaltic crust made up of volcanic rock.",
			"Mantle: The mantle is composed of silicate materials, where convective currents might be driving volcanic activity.",
			"Core: Venus likely has a core of iron and nickel, similar to Earth's, though its exact size and state are not fully known.",
		},
		Facts: []string{
			"Venus is the hottest planet in the solar system, with surface temperatures reaching up to 465°C (900°F), hotter than Mercury, despite being further from the Sun.",
			"Its thick, toxic atmosphere of carbon dioxide traps heat in a runaway greenhouse effect, while clouds of sulfuric acid make it inhospitable to life as we know it.",
			"A day on Venus is longer than a year, as it takes about 243 Earth days to rotate once but only 225 Earth days to orbit the Sun.",
		},
	},
	{
		Name: "Earth", Radius: 6, OrbitSpeed: 0.01, SpinSpeed: 0.02, Distance: 62,
		DiameterKm: 12742, Mass: 5.97, Gravity: 9.807, Color: "#4f8fdc", Clouds: true,
		Orbit: Orbit{A: 149.6, E: 0.0167, Period: 365.25},
		Layers: []string{
			"Crust: Earth's outer layer, consisting of continental and oceanic plates, rich in silicates and metals.",
			"Mantle: Made of semi-solid silicate rock, the mantle moves slowly, driving plate tectonics.",
			"Outer Core: A liquid layer composed mostly of molten iron and nickel, responsible for Earth's magnetic field.",
			"Inner Core: The solid innermost part of Earth, composed primarily of iron and nickel.",
		},
	},
	{
		Name: "Mars", Radius: 4, OrbitSpeed: 0.008, SpinSpeed: 0.018, Distance: 78,
		DiameterKm: 6779, Mass: 0.642, Gravity: 3.711, Color: "#c1440e",
		Orbit: Orbit{A: 227.92, E: 0.0934, Period: 687},
		Layers: []string{
			"Crust: Mars has a thin crust made of iron, magnesium, aluminum, and calcium silicate minerals.",
			"Mantle: The mantle of Mars consists of silicate rock with a less active tectonic system than Earth's.",
			"Core: Mars likely has a solid iron-nickel core, though its size and composition are not fully understood.",
		},
		Facts: []string{
			"Mars, known as the 'Red Planet,' gets its reddish appearance from iron oxide (rust) on its surface.",
			"It has the largest volcano in the solar system, Olympus Mons, which stands at 22 km (13.6 miles) high, almost three times the height of Mount Everest.",
			"Mars has seasons, polar ice caps, and weather patterns similar to Earth, but its thin atmosphere is primarily carbon dioxide.",
		},
	},
	{
		Name: "Jupiter", Radius: 12, OrbitSpeed: 0.002, SpinSpeed: 0.04, Distance: 100,
		DiameterKm: 139820, Mass: 1898, Gravity: 24.79, Color: "#d8ca9d",
		Orbit: Orbit{A: 778.57, E: 0.0484, Period: 4331},
		Layers: []string{
			"Cloud Layers: Jupiter's outer layer is composed of thick clouds of hydrogen, helium, and trace gases.",
			"Metallic Hydrogen Layer: Underneath the clouds, Jupiter has a layer of liquid metallic hydrogen, creating its strong magnetic field.",
			"Core: The core is hypothesized to be a dense mixture of rock, metal, and hydrogen compounds.",
		},
		Facts: []string{
			"Jupiter is the largest planet in the solar system and has a mass over 300 times that of Earth, with a volume that could fit more than 1,300 Earths inside it.",
			"Its Great Red Spot is a massive storm system, larger than Earth, that has been raging for at least 400 years.",
			"Jupiter has at least 79 moons, with four large ones (Io, Europa, Ganymede, and Callisto) known as the Galilean moons.",
		},
	},
	{
		Name: "Saturn", Radius: 10, OrbitSpeed: 0.0009, SpinSpeed: 0.038, Distance: 138,
		DiameterKm: 116460, Mass: 568, Gravity: 10.44, Color: "#ead6b8",
		Ring:  &Ring{Inner: 10, Outer: 20},
		Orbit: Orbit{A: 1427.0, E: 0.0565, Period: 10747},
		Layers: []string{
			"Cloud Layers: Saturn's outer layer consists of hydrogen and helium clouds with some traces of methane and ammonia.",
			"Metallic Hydrogen Layer: Below the atmosphere, Saturn has a layer of liquid metallic hydrogen.",
			"Core: Saturn's core is likely composed of rock and metal, surrounded by icy materials.",
		},
		Facts: []string{
			"Saturn is famous for its spectacular ring system, made up of ice and rock particles, some as small as grains of sand and others as large as mountains.",
			"It is the second largest planet in the solar system, and like Jupiter, it is a gas giant composed mainly of hydrogen and helium.",
			"Saturn has 83 moons, and its largest moon, Titan, is bigger than the planet Mercury and has a thick atmosphere.",
		},
	},
	{
		Name: "Uranus", Radius: 7, OrbitSpeed: 0.0004, SpinSpeed: 0.03, Distance: 176,
		DiameterKm: 50724, Mass: 86.8, Gravity: 8.69, Color: "#d1e7e7",
		Ring:  &Ring{Inner: 7, Outer: 12},
		Orbit: Orbit{A: 2871.0, E: 0.0463, Period: 30589},
		Layers: []string{
			"Atmosphere: Uranus' outer atmosphere consists of hydrogen, helium, and methane, giving it a blue-green color.",
			"Icy Mantle: Beneath the atmosphere, there's a mantle of water, ammonia, and methane ices.",
			"Core: Uranus likely has a small, rocky core made of silicate and metals.",
		},
		Facts: []string{
			"Uranus is unique among the planets because it rotates on its side, with its axis tilted by about 98 degrees, likely due to a massive collision early in its history.",
			"It is often called an 'ice giant' because its atmosphere contains water, ammonia, and methane ices, giving it a blue-green color.",
			"Uranus has 13 faint rings and at least 27 known moons, all named after characters from the works of William Shakespeare and Alexander Pope.",
		},
	},
	{
		Name: "Neptune", Radius: 7, OrbitSpeed: 0.0001, SpinSpeed: 0.032, Distance: 200,
		DiameterKm: 49244, Mass: 102, Gravity: 11.15, Color: "#5b5ddf",
		Orbit: Orbit{A: 4497.1, E: 0.0102, Period: 59800},
		Layers: []string{
			"Atmosphere: Neptune has a thick atmosphere composed of hydrogen, helium, and methane.",
			"Icy Mantle: The planet's mantle is made of water, ammonia, and methane ices.",
			"Core: Neptune likely has a rocky core, similar to Uranus, surrounded by dense ices.",
		},
		Facts: []string{
			"Neptune is the most distant planet in the solar system and is known for its deep blue color, caused by methane in its atmosphere.",
			"It has the strongest winds of any planet, with speeds exceeding 2,100 kilometers per hour (1,300 mph).",
			"Neptune has 14 moons, the largest of which, Triton, is thought to be a captured object from the Kuiper Belt.",
		},
	},
	{
		Name: "Pluto", Radius: 2.8, OrbitSpeed: 0.0007, SpinSpeed: 0.008, Distance: 216,
		DiameterKm: 2376, Mass: 0.013, Gravity: 0.62, Color: "#c2b280",
		Orbit: Orbit{A: 5906.4, E: 0.2488, Period: 90560},
		Layers: []string{
			"Surface Ice: Pluto's outer layer consists of nitrogen, methane, and carbon monoxide ices.",
			"Rocky Mantle: Beneath the icy surface, Pluto has a rocky mantle.",
			"Core: Pluto's core is thought to be composed of silicate rock.",
		},
		Facts: []string{
			"Although classified as a dwarf planet, Pluto has five moons, with its largest moon, Charon, being so large that the two bodies are sometimes considered a binary system.",
			"Pluto's surface is composed mainly of nitrogen, methane, and carbon monoxide ice, and it has a very thin atmosphere that expands and contracts depending on its distance from the Sun.",
			"A day on Pluto lasts about 153 hours, and it takes 248 Earth years to complete one orbit around the Sun.",
		},
	},
}
