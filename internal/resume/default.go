// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package resume

// Default returns the built-in sample record. Each call returns a fresh
// copy.
func Default() *Resume {
	return &Resume{
		Name:     "Saswat Priyadarshan",
		Title:    "Software Engineer @ Microsoft",
		Location: "Raleigh, NC, USA",
		Email:    "psaswat21@gmail.com",
		Website:  "https://saswat.dev",
		Summary: "Software Engineer at Microsoft enabling seamless Azure DevOps infrastructure " +
			"for silicon engineering teams. Experienced in pipeline automation, Docker, and Ansible. " +
			"Master's in Computer Science from NCSU.",
		Skills: []string{
			"Android Development",
			"C++",
			"Firebase",
			"DevOps: Docker, Azure DevOps, Ansible",
			"Web: React, SpringBoot, Node.js, Express, MongoDB",
			"Cloud-Native: Azure Service Bus, Event Hub, Kusto DB",
		},
		Experience: []Experience{
			{
				Company: "Microsoft",
				Role:    "Software Engineer",
				Period:  "Feb 2023 — Present",
				Bullets: []string{
					"Led Haia platform rollout, reducing licensing costs and saving hundreds of developer hours.",
					"Scaled agent pools with Docker and Azure, reducing pipeline latency by 60%.",
					"Designed YAML-based regression workflows with dynamic job control.",
					"Implemented publish-subscribe model using Azure Service Bus and Event Hub.",
				},
			},
			{
				Company: "Microsoft",
				Role:    "Software Engineer Intern",
				Period:  "May 2022 — Jul 2022",
				Bullets: []string{
					"Built DevOps command-line tools in Python for Azure pipelines.",
					"Solved critical data import/export issue with efficient custom data structures.",
				},
			},
			{
				Company: "Walmart Global Tech India",
				Role:    "Software Engineer II",
				Period:  "Jul 2020 — Jul 2021",
				Bullets: []string{
					"Automated incentive calculation flows, improving performance in STI domain.",
					"Developed scalable batch processes and integrated Azure LUIS chatbots.",
				},
			},
			{
				Company: "Verizon",
				Role:    "Member Of Technical Staff I (Full Stack Developer)",
				Period:  "Jul 2018 — Jul 2020",
				Bullets: []string{
					"Built scalable web apps with React, SpringBoot, MySQL, microservices.",
					"Collaborated in 5G coverage architecture and data mapping consistency.",
				},
			},
			{
				Company: "Infosys",
				Role:    "Systems Engineer Trainee",
				Period:  "Feb 2018 — May 2018",
				Bullets: []string{
					"Developed educator allotment system with Angular2, Node.js, Express, MongoDB.",
				},
			},
		},
		Education: []Education{
			{School: "North Carolina State University", Degree: "M.S. in Computer Science", Period: "Aug 2021 — Dec 2022"},
			{School: "SRM University", Degree: "B.Tech in Information Technology", Period: "2014 — 2018"},
		},
		Projects: []Project{
			{Name: "Haia Platform", Description: "AI-powered case management replacing Halo, reducing costs and improving automation."},
			{Name: "System Design Evaluator", Link: "https://github.com/saswat123/system-design-evaluator", Description: "Drag-and-drop system components with LLM feedback."},
		},
		Contact: []Contact{
			{Label: "Email", Value: "psaswat21@gmail.com"},
			{Label: "LinkedIn", Value: "https://www.linkedin.com/in/saswat-priyadarshan-ba2241122/"},
			{Label: "GitHub", Value: "https://github.com/saswat123"},
		},
	}
}
